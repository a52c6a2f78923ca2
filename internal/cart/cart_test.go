package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesExistingLine(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", Name: "A", UnitPrice: 10, Quantity: 2})
	s.Add(1, Item{ID: "a", Name: "A", UnitPrice: 10, Quantity: 3})

	c := s.Get(1)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddKeepsDistinctLines(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", Quantity: 1})
	s.Add(1, Item{ID: "b", Quantity: 1})

	assert.Len(t, s.Get(1).Items, 2)
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(-5))
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(1))
	assert.Equal(t, 7, ClampQuantity(7))
}

func TestTotals(t *testing.T) {
	c := Cart{Items: []Item{
		{ID: "a", UnitPrice: 10, Quantity: 2},
		{ID: "b", UnitPrice: 5, Quantity: 3},
	}}

	assert.Equal(t, 5, c.TotalItems())
	assert.InDelta(t, 35.0, c.TotalAmount(), 1e-9)
}

func TestTotalsRecomputedAfterMutation(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", UnitPrice: 10, Quantity: 2})
	s.Add(1, Item{ID: "b", UnitPrice: 5, Quantity: 3})

	require.True(t, s.UpdateQuantity(1, "a", 1))
	c := s.Get(1)
	assert.InDelta(t, 25.0, c.TotalAmount(), 1e-9)

	require.True(t, s.Remove(1, "b"))
	c = s.Get(1)
	assert.InDelta(t, 10.0, c.TotalAmount(), 1e-9)
	assert.Equal(t, 1, c.TotalItems())
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	s := NewStore()
	assert.False(t, s.UpdateQuantity(1, "missing", 2))
}

func TestRemoveDeletesLineEntirely(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", Quantity: 9})

	require.True(t, s.Remove(1, "a"))
	assert.Empty(t, s.Get(1).Items)
	assert.False(t, s.Remove(1, "a"))
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", Quantity: 1})

	s.Clear(1)
	assert.Empty(t, s.Get(1).Items)
	s.Clear(1)
	assert.Empty(t, s.Get(1).Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.Add(1, Item{ID: "a", Quantity: 1})
	s.Add(2, Item{ID: "b", Quantity: 4})

	assert.Len(t, s.Get(1).Items, 1)
	assert.Len(t, s.Get(2).Items, 1)
	assert.Equal(t, "b", s.Get(2).Items[0].ID)
}
