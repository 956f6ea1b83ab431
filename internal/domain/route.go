package domain

// Represents the ordered output of the sequencing engine.
// The origin always occupies index 0, followed by every delivery stop
// exactly once in visiting order.
type RouteSequence struct {
	Stops []Stop
}

// Origin returns the starting stop, or false for an empty sequence.
func (s RouteSequence) Origin() (Stop, bool) {
	if len(s.Stops) == 0 {
		return Stop{}, false
	}
	return s.Stops[0], true
}

// Deliveries returns the non-origin stops in visiting order.
func (s RouteSequence) Deliveries() []Stop {
	out := make([]Stop, 0, len(s.Stops))
	for _, st := range s.Stops {
		if !st.Origin {
			out = append(out, st)
		}
	}
	return out
}

// Points returns the coordinates of the sequence in order.
// Stops without a location are skipped.
func (s RouteSequence) Points() []GeoPoint {
	out := make([]GeoPoint, 0, len(s.Stops))
	for _, st := range s.Stops {
		if st.Location != nil {
			out = append(out, *st.Location)
		}
	}
	return out
}

// Aggregate distance, time and count statistics derived from a RouteSequence.
// Computed once per sequencing call and returned by value.
type RouteMetrics struct {
	TotalDistanceKm  float64
	EstimatedMinutes float64
	StopCount        int
	ExcludedCount    int
}

// Road-network path returned by an external routing collaborator.
type RoadPath struct {
	Points          []GeoPoint
	DistanceKm      float64
	DurationMinutes float64
}
