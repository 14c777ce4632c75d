package cart

import (
	"slices"
	"testing"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	milk   = domain.Item{Name: "Milk", Price: 5, Hashtags: []string{"dairy"}, Description: "1L"}
	bread  = domain.Item{Name: "Bread", Price: 8, Hashtags: []string{"bakery"}, Description: "rye"}
	butter = domain.Item{Name: "Butter", Price: 12, Hashtags: []string{"dairy"}, Description: "salted"}
)

func TestCart_Add_SubtotalIsPrice(t *testing.T) {
	for _, item := range []domain.Item{milk, bread, butter, {Name: "Free sample"}} {
		c := New()
		require.NoError(t, c.Add(item))
		assert.Equal(t, item.Price, c.Subtotal())
	}
}

func TestCart_Add_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))

	err := c.Add(milk.Clone())
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
	assert.Equal(t, 1, len(c.Items()))
}

func TestCart_Add_SameNameDifferentValue(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))

	other := milk.Clone()
	other.Price = 6
	require.NoError(t, c.Add(other))
	assert.Equal(t, 2, len(c.Items()))
}

func TestCart_Add_DoesNotAliasCaller(t *testing.T) {
	c := New()
	item := milk.Clone()
	require.NoError(t, c.Add(item))

	item.Hashtags[0] = "changed"
	assert.True(t, c.Contains(milk))
}

func TestCart_Remove_FirstMatchInOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(bread))
	require.NoError(t, c.Add(butter))
	require.NoError(t, c.Add(milk))

	// "B" matches both Bread and Butter; the first one in cart order goes.
	require.NoError(t, c.Remove("B"))

	assert.Equal(t, []domain.Item{butter, milk}, c.Items())
	assert.False(t, c.Contains(bread))
}

func TestCart_Remove_NotFound(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))

	err := c.Remove("Cheese")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, 1, len(c.Items()))
}

func TestCart_Remove_ThenAddAgain(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))
	require.NoError(t, c.Remove("Milk"))

	require.NoError(t, c.Add(milk))
	assert.Equal(t, 1, len(c.Items()))
}

func TestCart_Subtotal_Empty(t *testing.T) {
	assert.Equal(t, 0, New().Subtotal())
}

func TestCart_Subtotal_Sum(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))
	require.NoError(t, c.Add(bread))
	require.NoError(t, c.Add(butter))

	assert.Equal(t, 25, c.Subtotal())
}

func TestCart_All_Restartable(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(bread))
	require.NoError(t, c.Add(milk))

	first := slices.Collect(c.All())
	second := slices.Collect(c.All())

	assert.Equal(t, []domain.Item{bread, milk}, first)
	assert.Equal(t, first, second)

	for item := range c.All() {
		assert.Equal(t, bread, item)
		break
	}
}

func TestCart_Match(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(bread))
	require.NoError(t, c.Add(butter))
	require.NoError(t, c.Add(milk))

	assert.Equal(t, []domain.Item{bread, butter}, c.Match("B"))
	assert.Empty(t, c.Match("Cheese"))
	assert.Len(t, c.Match(""), 3)
}

func TestCart_Clear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(milk))
	require.NoError(t, c.Add(bread))

	c.Clear()

	assert.Equal(t, 0, len(c.Items()))
	assert.Equal(t, 0, c.Subtotal())
	require.NoError(t, c.Add(milk))
}
