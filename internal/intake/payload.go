// Package intake turns scanned QR payloads into delivery orders.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"delivery-route-sequencer/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidPayload = errors.New("invalid QR payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Payload is the flat JSON object encoded in an order's QR code.
type Payload struct {
	Name     string      `json:"NOMBRE" validate:"required"`
	Phone    string      `json:"CEL" validate:"required"`
	Address  string      `json:"DIR" validate:"required"`
	District string      `json:"DISTRITO" validate:"required"`
	Products ProductList `json:"PROD" validate:"min=1,dive,required"`
	Lat      *float64    `json:"LAT,omitempty"`
	Lng      *float64    `json:"LNG,omitempty"`
}

// ProductList accepts either a comma-joined string or an array of strings.
type ProductList []string

func (p *ProductList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("PROD: %w", err)
		}
		*p = cleanProducts(items)
		return nil
	}

	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return fmt.Errorf("PROD must be a string or an array of strings: %w", err)
	}
	*p = cleanProducts(strings.Split(joined, ","))
	return nil
}

func cleanProducts(items []string) ProductList {
	out := make(ProductList, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// ParsePayload validates a scanned QR payload and builds a pending order from it.
func ParsePayload(raw []byte) (*domain.Order, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w: %v", ErrInvalidPayload, err)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.District = strings.TrimSpace(p.District)

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return nil, fmt.Errorf("parse payload: %w: missing or empty %s", ErrInvalidPayload, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	order := &domain.Order{
		ID:         uuid.NewString(),
		ClientName: p.Name,
		Phone:      p.Phone,
		Address:    p.Address,
		District:   p.District,
		Products:   []string(p.Products),
		Status:     domain.OrderPending,
		ScannedAt:  time.Now().UTC(),
	}

	if p.Lat != nil && p.Lng != nil {
		loc := domain.GeoPoint{Latitude: *p.Lat, Longitude: *p.Lng}
		if !loc.Valid() {
			return nil, fmt.Errorf("parse payload: %w: LAT/LNG out of range", ErrInvalidPayload)
		}
		order.Location = &loc
	}

	return order, nil
}

// EncodePayload renders an order back into its QR payload form.
func EncodePayload(o *domain.Order) ([]byte, error) {
	p := Payload{
		Name:     o.ClientName,
		Phone:    o.Phone,
		Address:  o.Address,
		District: o.District,
		Products: ProductList(o.Products),
	}
	if o.Location != nil {
		lat, lng := o.Location.Latitude, o.Location.Longitude
		p.Lat, p.Lng = &lat, &lng
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}
