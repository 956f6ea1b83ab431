package services

import (
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/geo"
)

// ComputeMetrics derives distance, time and count statistics from a sequence.
// ExcludedCount is left at zero; the boundary that filtered the stops sets it.
func ComputeMetrics(seq domain.RouteSequence, policy domain.MetricsPolicy) domain.RouteMetrics {
	stopCount := 0
	for _, s := range seq.Stops {
		if !s.Origin {
			stopCount++
		}
	}

	total := geo.PathKm(seq.Points())

	minutes := 0.0
	if policy.AverageSpeedKmh > 0 {
		minutes = total / policy.AverageSpeedKmh * 60
	}
	minutes += float64(stopCount) * policy.PerStopMinutes

	return domain.RouteMetrics{
		TotalDistanceKm:  total,
		EstimatedMinutes: minutes,
		StopCount:        stopCount,
	}
}
