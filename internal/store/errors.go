package store

import "errors"

// Sentinel errors so HTTP handlers can map storage failures to status codes.
var (
	// ErrNotFound is returned when an operation targets a missing row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSKU is returned when an item write collides with an
	// existing SKU.
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrValidation is returned when caller-supplied fields violate
	// basic shape (unknown field, wrong type, non-numeric price).
	ErrValidation = errors.New("validation failed")
)
