package gps

import (
	"errors"
	"fmt"
	"strings"

	"delivery-route-sequencer/internal/domain"

	"github.com/adrianmo/go-nmea"
)

var ErrNoFix = errors.New("sentence carries no position fix")

// ParseFix extracts the driver's position from a GGA or RMC NMEA sentence.
func ParseFix(sentence string) (domain.GeoPoint, error) {
	s, err := nmea.Parse(strings.TrimSpace(sentence))
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("parse fix: %w", err)
	}

	var p domain.GeoPoint
	switch m := s.(type) {
	case nmea.GGA:
		if m.FixQuality == nmea.Invalid {
			return domain.GeoPoint{}, fmt.Errorf("parse fix: GGA: %w", ErrNoFix)
		}
		p = domain.GeoPoint{Latitude: m.Latitude, Longitude: m.Longitude}
	case nmea.RMC:
		if m.Validity != nmea.ValidRMC {
			return domain.GeoPoint{}, fmt.Errorf("parse fix: RMC: %w", ErrNoFix)
		}
		p = domain.GeoPoint{Latitude: m.Latitude, Longitude: m.Longitude}
	default:
		return domain.GeoPoint{}, fmt.Errorf("parse fix: unsupported sentence type %q", s.DataType())
	}

	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("parse fix: %w", domain.ErrInvalidOrigin)
	}
	return p, nil
}
