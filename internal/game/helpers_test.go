package game

import (
	"testing"
	"time"

	"github.com/impactgrid/impactgrid/internal/world"
)

var testEpoch = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestSim(t *testing.T, opts ...Option) *Sim {
	t.Helper()
	base := []Option{
		WithSeed(42),
		WithClock(func() time.Time { return testEpoch }),
	}
	return NewSim(append(base, opts...)...)
}

// runUntilIdle ticks until every purchase run has finished.
func runUntilIdle(t *testing.T, s *Sim) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if s.Sched.Idle() {
			return
		}
		s.Tick()
	}
	t.Fatal("scheduler never went idle")
}

// fillGrid occupies every empty slot with a finished tree.
func fillGrid(s *Sim) {
	for _, i := range s.Grid.EmptySlots() {
		s.Grid.Occupy(i, world.Slot{
			Occupant: world.OccupantTree,
			Category: world.CategoryEnvironmental,
			Stage:    s.Catalog.Environmental.MaxStage(),
		})
	}
}

type totalsPush struct {
	donated, spent string
}

type recordingSurface struct {
	totals  map[world.Category][]totalsPush
	slots   []int
	logs    []Entry
	cleared int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{totals: make(map[world.Category][]totalsPush)}
}

func (r *recordingSurface) Totals(c world.Category, donated, spent string) {
	r.totals[c] = append(r.totals[c], totalsPush{donated, spent})
}

func (r *recordingSurface) SlotChanged(i int, _ world.Slot) { r.slots = append(r.slots, i) }
func (r *recordingSurface) Logged(e Entry)                  { r.logs = append(r.logs, e) }
func (r *recordingSurface) Cleared()                        { r.cleared++ }
