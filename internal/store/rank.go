package store

import (
	"cmp"
	"iter"
	"slices"

	"github.com/DanielFadlon/simple-store/internal/domain"
)

// hashtagFrequency counts every hashtag occurrence across the cart
func hashtagFrequency(cartItems iter.Seq[domain.Item]) map[string]int {
	freq := make(map[string]int)
	for item := range cartItems {
		for _, tag := range item.Hashtags {
			freq[tag]++
		}
	}
	return freq
}

// rate sums the cart frequency of each of the item's hashtags. A tag that
// appears twice on the item is counted twice.
func rate(item domain.Item, freq map[string]int) int {
	total := 0
	for _, tag := range item.Hashtags {
		total += freq[tag]
	}
	return total
}

type rated struct {
	item domain.Item
	rate int
}

// rankByRelevance orders candidates by rate descending, then by name
// ascending. Equal names keep their catalog order.
func rankByRelevance(candidates []domain.Item, cartItems iter.Seq[domain.Item]) []domain.Item {
	freq := hashtagFrequency(cartItems)

	scored := make([]rated, len(candidates))
	for i, item := range candidates {
		scored[i] = rated{item: item, rate: rate(item, freq)}
	}

	slices.SortStableFunc(scored, func(a, b rated) int {
		if c := cmp.Compare(b.rate, a.rate); c != 0 {
			return c
		}
		return cmp.Compare(a.item.Name, b.item.Name)
	})

	ranked := make([]domain.Item, len(scored))
	for i, r := range scored {
		ranked[i] = r.item
	}
	return ranked
}
