package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Item is a catalog entry. Items are values: two items are the same item
// when all four fields match, hashtag order included.
type Item struct {
	Name        string   `json:"name" yaml:"name" bson:"name"`
	Price       int      `json:"price" yaml:"price" bson:"price"`
	Hashtags    []string `json:"hashtags" yaml:"hashtags" bson:"hashtags"`
	Description string   `json:"description" yaml:"description" bson:"description"`
}

// NewItem validates the price and copies hashtags so the caller's slice
// can't alias the item.
func NewItem(name string, price int, hashtags []string, description string) (Item, error) {
	if price < 0 {
		return Item{}, ErrNegativePrice
	}
	return Item{
		Name:        name,
		Price:       price,
		Hashtags:    slices.Clone(hashtags),
		Description: description,
	}, nil
}

// Equal reports value equality over all fields.
func (i Item) Equal(other Item) bool {
	return i.Name == other.Name &&
		i.Price == other.Price &&
		i.Description == other.Description &&
		slices.Equal(i.Hashtags, other.Hashtags)
}

// Key returns a string that is identical for two items iff they are Equal.
// Every field is length-prefixed so no two distinct items share a key.
func (i Item) Key() string {
	var b strings.Builder
	writeField(&b, i.Name)
	writeField(&b, strconv.Itoa(i.Price))
	writeField(&b, i.Description)
	b.WriteString(strconv.Itoa(len(i.Hashtags)))
	b.WriteByte('#')
	for _, tag := range i.Hashtags {
		writeField(&b, tag)
	}
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// HasHashtag reports whether tag is one of the item's hashtags.
func (i Item) HasHashtag(tag string) bool {
	return slices.Contains(i.Hashtags, tag)
}

// Matches reports whether fragment is a substring of the item name.
func (i Item) Matches(fragment string) bool {
	return strings.Contains(i.Name, fragment)
}

// Clone returns a copy that shares no memory with i.
func (i Item) Clone() Item {
	i.Hashtags = slices.Clone(i.Hashtags)
	return i
}

// CloneItems copies a slice of items, hashtags included.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for idx, item := range items {
		out[idx] = item.Clone()
	}
	return out
}
