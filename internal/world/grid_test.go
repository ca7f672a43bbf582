package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid()
	require.Equal(t, GridSize, g.Len())
	assert.Equal(t, 0, g.Occupied())
	assert.Len(t, g.EmptySlots(), GridSize)
	assert.Equal(t, 0, g.FirstEmpty())
	assert.False(t, g.Full())
}

func TestEmptySlotsPositionOrder(t *testing.T) {
	g := NewGrid()
	g.Occupy(0, Slot{Occupant: OccupantShelter, Category: CategoryAnimal})
	g.Occupy(2, Slot{Occupant: OccupantTree, Category: CategoryEnvironmental})

	empty := g.EmptySlots()
	require.Len(t, empty, GridSize-2)
	assert.Equal(t, []int{1, 3, 4}, empty[:3])
	assert.Equal(t, 1, g.FirstEmpty())

	// Recomputed after every mutation.
	g.Occupy(1, Slot{Occupant: OccupantAnimal, Category: CategoryAnimal})
	assert.Equal(t, 3, g.EmptySlots()[0])
}

func TestOccupyOutOfRangeIgnored(t *testing.T) {
	g := NewGrid()
	g.Occupy(-1, Slot{Occupant: OccupantTree})
	g.Occupy(GridSize, Slot{Occupant: OccupantTree})
	assert.Equal(t, 0, g.Occupied())
	assert.True(t, g.Get(GridSize).Empty())
}

func TestAtUsesRowMajorLayout(t *testing.T) {
	g := NewGrid()
	g.Occupy(GridWidth+3, Slot{Occupant: OccupantSchool, Stage: 2})
	assert.Equal(t, OccupantSchool, g.At(3, 1).Occupant)
	assert.True(t, g.At(GridWidth, 0).Empty())
}

func TestFullAndClearAll(t *testing.T) {
	g := NewGrid()
	for i := 0; i < g.Len(); i++ {
		g.Occupy(i, Slot{Occupant: OccupantTree, Category: CategoryEnvironmental, Stage: 1})
	}
	assert.True(t, g.Full())
	assert.Empty(t, g.EmptySlots())
	assert.Equal(t, -1, g.FirstEmpty())
	assert.Equal(t, GridSize, g.CountOccupant(OccupantTree))

	g.ClearAll()
	assert.Equal(t, 0, g.Occupied())
	for _, s := range g.Slots {
		assert.Equal(t, Slot{}, s)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	_, ok := ParseCategory("space")
	assert.False(t, ok)
	_, ok = ParseCategory("")
	assert.False(t, ok)
}
