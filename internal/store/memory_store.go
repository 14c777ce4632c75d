package store

import (
	"github.com/DanielFadlon/simple-store/internal/cart"
	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
)

// Store implements Catalog over a fixed item list and a single cart.
// It is not safe for concurrent use; session.Manager serializes access.
type Store struct {
	items []domain.Item
	cart  *cart.Cart
}

// New creates a store over a private copy of items with an empty cart
func New(items []domain.Item) *Store {
	return &Store{
		items: domain.CloneItems(items),
		cart:  cart.New(),
	}
}

func (s *Store) Items() []domain.Item {
	return domain.CloneItems(s.items)
}

func (s *Store) SearchByName(fragment string) []domain.Item {
	return s.search(func(item domain.Item) bool {
		return item.Matches(fragment)
	})
}

func (s *Store) SearchByHashtag(tag string) []domain.Item {
	return s.search(func(item domain.Item) bool {
		return item.HasHashtag(tag)
	})
}

// search filters the catalog, drops anything already in the cart and ranks
// what is left
func (s *Store) search(keep func(domain.Item) bool) []domain.Item {
	candidates := make([]domain.Item, 0)
	for _, item := range s.items {
		if keep(item) && !s.cart.Contains(item) {
			candidates = append(candidates, item.Clone())
		}
	}
	return rankByRelevance(candidates, s.cart.All())
}

// AddItem resolves fragment against the catalog and adds the match to the cart.
func (s *Store) AddItem(fragment string) error {
	var matches []domain.Item
	for _, item := range s.items {
		if item.Matches(fragment) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return errors.Wrapf(domain.ErrItemNotFound, "add %q", fragment)
	case 1:
		return s.cart.Add(matches[0])
	default:
		return errors.Wrapf(domain.ErrAmbiguousMatch, "add %q matches %d items", fragment, len(matches))
	}
}

// RemoveItem rejects a fragment matching several cart items, then lets the
// cart do its own lookup. Zero matches are reported by the cart.
func (s *Store) RemoveItem(fragment string) error {
	if matches := s.cart.Match(fragment); len(matches) > 1 {
		return errors.Wrapf(domain.ErrAmbiguousMatch, "remove %q matches %d items", fragment, len(matches))
	}
	return s.cart.Remove(fragment)
}

func (s *Store) ClearCart() {
	s.cart.Clear()
}

func (s *Store) CartItems() []domain.Item {
	return s.cart.Items()
}

func (s *Store) Checkout() int {
	return s.cart.Subtotal()
}
