package dto

import (
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/services"
)

// OriginRequest carries the driver position either as coordinates or as a raw
// NMEA sentence from the device GPS.
type OriginRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	NMEA      string   `json:"nmea"`
}

type RouteRequest struct {
	Origin   OriginRequest `json:"origin"`
	OrderIDs []string      `json:"order_ids"`
	District string        `json:"district"`
	Refine   bool          `json:"refine"`
	Format   string        `json:"format"`
}

type RouteStopResponse struct {
	Seq        int               `json:"seq"`
	ID         string            `json:"id"`
	ClientName string            `json:"client_name,omitempty"`
	Address    string            `json:"address,omitempty"`
	District   string            `json:"district,omitempty"`
	Origin     bool              `json:"origin"`
	Location   *LocationResponse `json:"location"`
}

type RouteMetricsResponse struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	StopCount        int     `json:"stop_count"`
	ExcludedCount    int     `json:"excluded_count"`
}

type RouteResponse struct {
	Sequence       []RouteStopResponse  `json:"sequence"`
	Metrics        RouteMetricsResponse `json:"metrics"`
	Path           [][2]float64         `json:"path"`
	Refined        bool                 `json:"refined"`
	RoadDistanceKm float64              `json:"road_distance_km,omitempty"`
	RoadMinutes    float64              `json:"road_minutes,omitempty"`
	Notices        []string             `json:"notices"`
	Excluded       []string             `json:"excluded"`
}

func NewRouteResponse(plan *services.RoutePlan) RouteResponse {
	res := RouteResponse{
		Sequence: make([]RouteStopResponse, 0, len(plan.Sequence.Stops)),
		Metrics: RouteMetricsResponse{
			TotalDistanceKm:  plan.Metrics.TotalDistanceKm,
			EstimatedMinutes: plan.Metrics.EstimatedMinutes,
			StopCount:        plan.Metrics.StopCount,
			ExcludedCount:    plan.Metrics.ExcludedCount,
		},
		Path:           make([][2]float64, 0, len(plan.Path)),
		Refined:        plan.Refined,
		RoadDistanceKm: plan.RoadDistanceKm,
		RoadMinutes:    plan.RoadMinutes,
		Notices:        plan.Notices,
		Excluded:       plan.Excluded,
	}

	for i, s := range plan.Sequence.Stops {
		res.Sequence = append(res.Sequence, RouteStopResponse{
			Seq:        i,
			ID:         s.ID,
			ClientName: s.ClientName,
			Address:    s.Address,
			District:   s.District,
			Origin:     s.Origin,
			Location:   NewLocationResponse(s.Location),
		})
	}
	for _, p := range plan.Path {
		res.Path = append(res.Path, pathPoint(p))
	}
	if res.Notices == nil {
		res.Notices = []string{}
	}
	if res.Excluded == nil {
		res.Excluded = []string{}
	}
	return res
}

// pathPoint renders [lat, lon], the order map widgets expect.
func pathPoint(p domain.GeoPoint) [2]float64 {
	return [2]float64{p.Latitude, p.Longitude}
}
