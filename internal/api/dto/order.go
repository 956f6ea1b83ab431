package dto

import (
	"time"

	"delivery-route-sequencer/internal/domain"
)

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderResponse struct {
	ID          string            `json:"id"`
	ClientName  string            `json:"client_name"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	District    string            `json:"district"`
	Products    []string          `json:"products"`
	Status      string            `json:"status"`
	Location    *LocationResponse `json:"location"`
	ScannedAt   time.Time         `json:"scanned_at"`
	DeliveredAt *time.Time        `json:"delivered_at"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DistrictSummaryResponse struct {
	District  string `json:"district"`
	Pending   int    `json:"pending"`
	Delivered int    `json:"delivered"`
	Failed    int    `json:"failed"`
}

type ListDistrictsResponse struct {
	Districts []DistrictSummaryResponse `json:"districts"`
}

func NewLocationResponse(p *domain.GeoPoint) *LocationResponse {
	if p == nil {
		return nil
	}
	return &LocationResponse{Latitude: p.Latitude, Longitude: p.Longitude}
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	products := o.Products
	if products == nil {
		products = []string{}
	}

	return OrderResponse{
		ID:          o.ID,
		ClientName:  o.ClientName,
		Phone:       o.Phone,
		Address:     o.Address,
		District:    o.District,
		Products:    products,
		Status:      string(o.Status),
		Location:    NewLocationResponse(o.Location),
		ScannedAt:   o.ScannedAt,
		DeliveredAt: o.DeliveredAt,
	}
}
