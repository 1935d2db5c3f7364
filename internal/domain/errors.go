package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrPersist indicates a write to the durable store was rejected.
	// Reads stay total; only mutations surface this.
	ErrPersist = errors.New("persist failed")

	// ErrInvalidItem indicates an item whose identity could not be resolved.
	ErrInvalidItem = errors.New("invalid cart item")

	// ErrEmptyCart blocks checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnpricedItem blocks checkout while any line has a zero price.
	ErrUnpricedItem = errors.New("cart item has no price")

	// ErrNotAuthenticated indicates no bearer token for the active session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
