package domain

import "github.com/pkg/errors"

// Common errors returned by the cart, the store and the catalog loaders
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrAmbiguousMatch  = errors.New("more than one item matches")
	ErrDuplicateItem   = errors.New("item already in cart")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidCatalog  = errors.New("invalid catalog record")
	ErrSessionNotFound = errors.New("session not found")
)
