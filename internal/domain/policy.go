package domain

import "fmt"

// MetricsPolicy holds the assumptions used to estimate route duration.
// The values are policy, not physical constants.
type MetricsPolicy struct {
	AverageSpeedKmh float64
	PerStopMinutes  float64
}

// DefaultMetricsPolicy returns 30 km/h travel speed and 5 minutes per stop.
func DefaultMetricsPolicy() MetricsPolicy {
	return MetricsPolicy{
		AverageSpeedKmh: 30,
		PerStopMinutes:  5,
	}
}

func (p MetricsPolicy) Validate() error {
	if !(p.AverageSpeedKmh > 0) {
		return fmt.Errorf("average speed %v km/h must be positive: %w", p.AverageSpeedKmh, ErrInvalidPolicy)
	}
	if !(p.PerStopMinutes >= 0) {
		return fmt.Errorf("per-stop minutes %v must not be negative: %w", p.PerStopMinutes, ErrInvalidPolicy)
	}
	return nil
}
