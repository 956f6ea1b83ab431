package domain

// OriginStopID identifies the synthetic stop holding the driver's position.
const OriginStopID = "origin"

// Represents a single delivery destination in a route.
// A Stop without a Location has not been geocoded yet and must not reach
// the sequencing engine.
type Stop struct {
	ID         string
	ClientName string
	Address    string
	District   string
	Location   *GeoPoint
	Origin     bool
}

// NewOriginStop builds the synthetic stop for the driver's current position.
func NewOriginStop(p GeoPoint) Stop {
	return Stop{
		ID:       OriginStopID,
		Location: &p,
		Origin:   true,
	}
}
