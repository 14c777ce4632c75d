package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_NegativePrice(t *testing.T) {
	_, err := NewItem("Milk", -1, nil, "")
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestNewItem_CopiesHashtags(t *testing.T) {
	tags := []string{"dairy", "fresh"}
	item, err := NewItem("Milk", 5, tags, "1L")
	require.NoError(t, err)

	tags[0] = "changed"
	assert.Equal(t, []string{"dairy", "fresh"}, item.Hashtags)
}

func TestItem_Equal(t *testing.T) {
	base := Item{Name: "Milk", Price: 5, Hashtags: []string{"dairy", "fresh"}, Description: "1L"}

	tests := []struct {
		name  string
		other Item
		want  bool
	}{
		{"identical", base.Clone(), true},
		{"different name", Item{Name: "Milk 3%", Price: 5, Hashtags: []string{"dairy", "fresh"}, Description: "1L"}, false},
		{"different price", Item{Name: "Milk", Price: 6, Hashtags: []string{"dairy", "fresh"}, Description: "1L"}, false},
		{"different description", Item{Name: "Milk", Price: 5, Hashtags: []string{"dairy", "fresh"}, Description: "2L"}, false},
		{"reordered hashtags", Item{Name: "Milk", Price: 5, Hashtags: []string{"fresh", "dairy"}, Description: "1L"}, false},
		{"missing hashtag", Item{Name: "Milk", Price: 5, Hashtags: []string{"dairy"}, Description: "1L"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
			assert.Equal(t, tt.want, base.Key() == tt.other.Key())
		})
	}
}

func TestItem_Key_NoFieldBleed(t *testing.T) {
	a := Item{Name: "ab", Description: "c"}
	b := Item{Name: "a", Description: "bc"}
	assert.NotEqual(t, a.Key(), b.Key())

	c := Item{Hashtags: []string{"x,y"}}
	d := Item{Hashtags: []string{"x", "y"}}
	assert.NotEqual(t, c.Key(), d.Key())

	var nilTags, emptyTags Item
	emptyTags.Hashtags = []string{}
	assert.True(t, nilTags.Equal(emptyTags))
	assert.Equal(t, nilTags.Key(), emptyTags.Key())
}

func TestItem_HasHashtag(t *testing.T) {
	item := Item{Name: "Bread", Hashtags: []string{"bakery", "fresh"}}

	assert.True(t, item.HasHashtag("bakery"))
	assert.False(t, item.HasHashtag("bake"))
	assert.False(t, item.HasHashtag(""))
}

func TestItem_Matches(t *testing.T) {
	item := Item{Name: "Whole Wheat Bread"}

	assert.True(t, item.Matches("Wheat"))
	assert.True(t, item.Matches(""))
	assert.False(t, item.Matches("wheat"))
}

func TestCloneItems(t *testing.T) {
	assert.Nil(t, CloneItems(nil))

	src := []Item{{Name: "A", Hashtags: []string{"x"}}}
	out := CloneItems(src)
	out[0].Hashtags[0] = "y"
	assert.Equal(t, "x", src[0].Hashtags[0])
}
