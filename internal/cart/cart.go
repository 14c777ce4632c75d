package cart

import (
	"iter"
	"slices"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
)

// Cart is an ordered set of items. Membership is decided by value, so the
// same catalog item can't be added twice.
type Cart struct {
	items []domain.Item
	keys  map[string]struct{}
}

func New() *Cart {
	return &Cart{
		keys: make(map[string]struct{}),
	}
}

// Add appends item unless an equal item is already present.
func (c *Cart) Add(item domain.Item) error {
	key := item.Key()
	if _, exists := c.keys[key]; exists {
		return errors.Wrapf(domain.ErrDuplicateItem, "add %q", item.Name)
	}

	c.items = append(c.items, item.Clone())
	c.keys[key] = struct{}{}
	return nil
}

// Remove drops the first item, in cart order, whose name contains fragment.
// Ambiguity is not checked here.
func (c *Cart) Remove(fragment string) error {
	for i, item := range c.items {
		if item.Matches(fragment) {
			c.items = slices.Delete(c.items, i, i+1)
			delete(c.keys, item.Key())
			return nil
		}
	}
	return errors.Wrapf(domain.ErrItemNotFound, "remove %q", fragment)
}

func (c *Cart) Clear() {
	c.items = nil
	clear(c.keys)
}

// Subtotal is the sum of all item prices.
func (c *Cart) Subtotal() int {
	total := 0
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

func (c *Cart) Contains(item domain.Item) bool {
	_, ok := c.keys[item.Key()]
	return ok
}

// Match returns the cart items whose name contains fragment, in cart order.
func (c *Cart) Match(fragment string) []domain.Item {
	var matches []domain.Item
	for _, item := range c.items {
		if item.Matches(fragment) {
			matches = append(matches, item.Clone())
		}
	}
	return matches
}

// All iterates over the cart in insertion order. Each call starts over.
func (c *Cart) All() iter.Seq[domain.Item] {
	return func(yield func(domain.Item) bool) {
		for _, item := range c.items {
			if !yield(item.Clone()) {
				return
			}
		}
	}
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []domain.Item {
	return domain.CloneItems(c.items)
}
