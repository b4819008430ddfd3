package domain

import "errors"

var (
	// ErrNotFound signals a referenced product, category, or order does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals the request violated a domain invariant.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientStock signals an order asked for more units than remain.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUpstream signals the external image host call failed.
	ErrUpstream = errors.New("upstream service error")
)
