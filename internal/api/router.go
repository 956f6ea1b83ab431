package api

import (
	"net/http"

	"delivery-route-sequencer/internal/api/handlers"
	"delivery-route-sequencer/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.OrderRepository, planner handlers.Planner) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/orders", orderHandler.Orders)
	mux.HandleFunc("/orders/{id}/status", orderHandler.Status)
	mux.HandleFunc("/orders/{id}/label", orderHandler.Label)
	mux.HandleFunc("/districts", orderHandler.Districts)
	mux.HandleFunc("/routes", routeHandler.Plan)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
