package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTrackingRequired  = errors.New("carrier and tracking id required when marking shipped")
)
