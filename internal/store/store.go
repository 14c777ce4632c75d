package store

import (
	"github.com/DanielFadlon/simple-store/internal/domain"
)

// Catalog defines the operations a shopping session performs against the
// store. It is implemented by *Store.
type Catalog interface {
	// Items returns every catalog item in load order
	Items() []domain.Item

	// SearchByName returns the items whose name contains fragment,
	// excluding items already in the cart, ranked by relevance
	SearchByName(fragment string) []domain.Item

	// SearchByHashtag returns the items tagged with tag,
	// excluding items already in the cart, ranked by relevance
	SearchByHashtag(tag string) []domain.Item

	// AddItem puts the single catalog item matching fragment in the cart
	AddItem(fragment string) error

	// RemoveItem takes the single cart item matching fragment out of the cart
	RemoveItem(fragment string) error

	// ClearCart empties the cart
	ClearCart()

	// CartItems returns the cart contents in insertion order
	CartItems() []domain.Item

	// Checkout returns the cart subtotal
	Checkout() int
}
