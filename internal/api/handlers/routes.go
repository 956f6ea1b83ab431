package handlers

import (
	"context"
	"net/http"
	"strings"

	"delivery-route-sequencer/internal/adapters/gps"
	"delivery-route-sequencer/internal/api/dto"
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/services"
)

// Planner is the route planning dependency of RouteHandler.
type Planner interface {
	Plan(ctx context.Context, req services.PlanRouteRequest) (*services.RoutePlan, error)
}

type RouteHandler struct {
	Planner Planner
}

// Plan handles POST /routes: sequence pending orders from the driver's position.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, r, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	origin, msg := parseOrigin(req.Origin)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	ids := make([]string, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	plan, err := h.Planner.Plan(r.Context(), services.PlanRouteRequest{
		Origin:   origin,
		OrderIDs: ids,
		District: req.District,
		Refine:   req.Refine,
	})
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	if format == "geojson" {
		writeBody(w, r, "application/geo+json", http.StatusOK, dto.NewRouteOverlay(plan))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(plan))
}

func parseOrigin(o dto.OriginRequest) (domain.GeoPoint, string) {
	if s := strings.TrimSpace(o.NMEA); s != "" {
		p, err := gps.ParseFix(s)
		if err != nil {
			return domain.GeoPoint{}, "origin.nmea: " + err.Error()
		}
		return p, ""
	}

	if o.Latitude == nil || o.Longitude == nil {
		return domain.GeoPoint{}, "origin.latitude and origin.longitude are required"
	}

	p := domain.GeoPoint{Latitude: *o.Latitude, Longitude: *o.Longitude}
	if !p.Valid() {
		return domain.GeoPoint{}, "origin is out of range"
	}
	return p, ""
}
