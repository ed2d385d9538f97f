// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, priceValue float64, qty int) Line {
	return Line{
		ID:         id,
		Title:      "t-" + id,
		Price:      priceValue,
		NewPrice:   "€ x",
		PriceValue: priceValue,
		Quantity:   qty,
	}
}

func TestNewLineValidation(t *testing.T) {
	_, err := NewLine(LineInput{Title: "x", Price: 1, PriceValue: 1}, 1)
	assert.ErrorIs(t, err, ErrLineMissingID)

	_, err = NewLine(LineInput{ID: "a", Price: 1, PriceValue: 1}, 1)
	assert.ErrorIs(t, err, ErrLineMissingTitle)

	_, err = NewLine(LineInput{ID: "a", Title: "x", Price: -1, PriceValue: 1}, 1)
	assert.ErrorIs(t, err, ErrLineInvalidPrice)

	_, err = NewLine(LineInput{ID: "a", Title: "x", Price: 1, PriceValue: -1}, 1)
	assert.ErrorIs(t, err, ErrLineInvalidPriceValue)

	_, err = NewLine(LineInput{ID: "a", Title: "x", Price: 1, PriceValue: 1}, 0)
	assert.ErrorIs(t, err, ErrLineInvalidQuantity)

	l, err := NewLine(LineInput{ID: " a ", Title: " x ", Price: 2, PriceValue: 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, "a", l.ID)
	assert.Equal(t, "x", l.Title)
	assert.Equal(t, 2, l.Quantity)
}

func TestAddMergesSameID(t *testing.T) {
	c, err := NewCart("u1", nil)
	require.NoError(t, err)

	require.NoError(t, c.Add(line("a", 10, 2)))

	// same id, different size: merges quantity, never a second line
	variant := line("a", 10, 3)
	variant.Size = "EU 42"
	require.NoError(t, c.Add(variant))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Empty(t, c.Items[0].Size)
}

func TestSetQuantityBelowOneIsNoop(t *testing.T) {
	c, _ := NewCart("u1", []Line{line("a", 10, 2)})

	require.NoError(t, c.SetQuantity("a", 0))
	assert.Equal(t, 2, c.Items[0].Quantity)

	require.NoError(t, c.SetQuantity("a", -1))
	assert.Equal(t, 2, c.Items[0].Quantity)

	require.NoError(t, c.SetQuantity("a", 7))
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c, _ := NewCart("u1", []Line{line("a", 10, 2), line("b", 5, 1)})

	require.NoError(t, c.Remove("zzz"))
	require.Len(t, c.Items, 2)

	require.NoError(t, c.Remove("a"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "b", c.Items[0].ID)
}

func TestTotalsAndCounts(t *testing.T) {
	c, _ := NewCart("u1", []Line{line("a", 10, 2), line("b", 5, 1)})

	assert.Equal(t, 25.0, c.Total())
	assert.Equal(t, 3, c.Count())

	c.Clear()
	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, 0, c.Count())

	// nil-state guards
	assert.Equal(t, 0.0, TotalOf(nil))
	assert.Equal(t, 0, CountOf(nil))
}

func TestMutationSequencePreservesInvariants(t *testing.T) {
	c, _ := NewCart("u1", nil)

	require.NoError(t, c.Add(line("a", 10, 1)))
	require.NoError(t, c.Add(line("b", 5, 2)))
	require.NoError(t, c.Add(line("a", 10, 1))) // merge -> a:2
	require.NoError(t, c.SetQuantity("b", 4))
	require.NoError(t, c.Remove("a"))

	assert.Equal(t, 4, c.Count())
	assert.Equal(t, 20.0, c.Total())
	require.Len(t, c.Items, 1)
}

func TestNewCartNormalizesSeedItems(t *testing.T) {
	// duplicate ids and zero quantities in stored state are repaired on load
	c, err := NewCart("u1", []Line{
		line("a", 10, 1),
		{ID: "bad", Quantity: 0},
		line("a", 10, 2),
	})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestNewCartRequiresUserID(t *testing.T) {
	_, err := NewCart("  ", nil)
	assert.ErrorIs(t, err, ErrInvalidCart)
}
