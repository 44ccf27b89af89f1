// Package core provides the item, embedding and result types shared by the simscore packages.
package core

import "errors"

// Sentinel errors for dataset and scoring operations.
var (
	ErrInvalidItem       = errors.New("invalid item")
	ErrZeroVector        = errors.New("zero-length embedding norm")
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
)

// ValidationError carries field-level validation context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidItem).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}
