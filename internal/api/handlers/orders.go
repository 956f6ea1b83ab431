package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"delivery-route-sequencer/internal/api/dto"
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/intake"
	"delivery-route-sequencer/internal/ports"
)

// OrderHandler exposes order intake, listing and status endpoints.
type OrderHandler struct {
	Repo ports.OrderRepository
}

// Orders serves GET (list) and POST (scan a QR payload) on /orders.
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.create(w, r)
		return
	}

	filter := ports.OrderFilter{District: strings.TrimSpace(r.URL.Query().Get("district"))}
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		status, err := domain.ParseOrderStatus(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "status must be pending, delivered or failed")
			return
		}
		filter.Status = status
	}

	orders, err := h.Repo.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.NewOrderResponse(o))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable body")
		return
	}

	order, err := intake.ParsePayload(raw)
	if err != nil {
		writeServiceError(w, r, "parse payload", err)
		return
	}

	if err := h.Repo.SaveOrder(r.Context(), order); err != nil {
		writeServiceError(w, r, "save order", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewOrderResponse(order))
}

// Status handles POST /orders/{id}/status.
func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := domain.ParseOrderStatus(strings.TrimSpace(req.Status))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "status must be pending, delivered or failed")
		return
	}

	id := r.PathValue("id")
	if err := h.Repo.UpdateStatus(r.Context(), id, status); err != nil {
		writeServiceError(w, r, "update status", err)
		return
	}

	order, err := h.Repo.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewOrderResponse(order))
}

// Label handles GET /orders/{id}/label and returns a PNG QR code.
func (h *OrderHandler) Label(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	size := intake.DefaultLabelSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			writeError(w, r, http.StatusBadRequest, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	order, err := h.Repo.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}

	png, err := intake.Label(order, size)
	if err != nil {
		writeServiceError(w, r, "render label", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Districts handles GET /districts.
func (h *OrderHandler) Districts(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	sums, err := h.Repo.DistrictSummaries(r.Context())
	if err != nil {
		writeServiceError(w, r, "district summaries", err)
		return
	}

	res := dto.ListDistrictsResponse{Districts: make([]dto.DistrictSummaryResponse, 0, len(sums))}
	for _, s := range sums {
		res.Districts = append(res.Districts, dto.DistrictSummaryResponse{
			District:  s.District,
			Pending:   s.Pending,
			Delivered: s.Delivered,
			Failed:    s.Failed,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
