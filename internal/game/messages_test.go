package game

import (
	"testing"

	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogNewestFirst(t *testing.T) {
	l := NewEventLog()
	first := l.Add(testEpoch, world.CategoryAnimal, "one")
	l.Add(testEpoch, world.CategoryAnimal, "two")
	l.Add(testEpoch, world.CategoryEducation, "three")

	require.Equal(t, 3, l.Len())
	recent := l.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Text)
	assert.Equal(t, "two", recent[1].Text)

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, first, all[2])
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Len(t, l.Recent(50), 3)
}

func TestEventLogClear(t *testing.T) {
	l := NewEventLog()
	l.Add(testEpoch, world.CategoryAnimal, "one")
	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.All())
}

func TestEntryString(t *testing.T) {
	e := Entry{Time: testEpoch, Text: "A sapling was planted."}
	assert.Equal(t, "[09:30:00] A sapling was planted.", e.String())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"short"}, WrapText("short", 10))
	assert.Equal(t,
		[]string{"A new animal", "shelter has", "been built."},
		WrapText("A new animal shelter has been built.", 12))
}
