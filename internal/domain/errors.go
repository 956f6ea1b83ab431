package domain

import "errors"

var (
	ErrMissingCoordinate = errors.New("stop has no resolved coordinate")
	ErrInvalidOrigin     = errors.New("origin is not a valid coordinate")
	ErrInvalidPolicy     = errors.New("invalid metrics policy")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
)
