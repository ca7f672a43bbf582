package game

import (
	"encoding/json"
	"testing"

	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	s := newTestSim(t, WithPlaceInterval(1))
	require.NoError(t, s.Donate(world.CategoryAnimal, 1250))
	s.Tick()

	st := s.Snapshot()
	assert.Equal(t, uint64(1), st.Tick)
	assert.Equal(t, world.GridWidth, st.Width)
	require.Len(t, st.Slots, world.GridSize)
	require.Len(t, st.Accounts, 3)

	animal := st.Accounts[1]
	assert.Equal(t, "animal", animal.Category)
	assert.Equal(t, "$1,250", animal.DonatedDisplay)
	assert.Equal(t, "$10", animal.SpentDisplay)
	assert.Equal(t, 124, animal.Pending)

	shelter := st.Slots[0]
	assert.Equal(t, "shelter", shelter.Occupant)
	assert.Equal(t, "animal", shelter.Category)
	require.NotNil(t, shelter.Image)
	assert.Equal(t, "Animal Shelter", shelter.Image.Alt)
	assert.Nil(t, st.Slots[1].Image)

	require.Len(t, st.Log, 1)
	assert.Equal(t, "animal", st.Log[0].Category.String())
}

func TestSnapshotJSON(t *testing.T) {
	s := newTestSim(t)
	raw, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	slots := doc["slots"].([]any)
	assert.Equal(t, map[string]any{"index": float64(0), "occupant": "empty"}, slots[0])
}
