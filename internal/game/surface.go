package game

import "github.com/impactgrid/impactgrid/internal/world"

// Surface receives every visible change the simulation makes: totals
// displays, the tile grid and the log feed.
type Surface interface {
	Totals(c world.Category, donated, spent string)
	SlotChanged(index int, slot world.Slot)
	Logged(e Entry)
	Cleared()
}

// NopSurface discards all updates. Front ends that redraw from Snapshot
// every frame use it.
type NopSurface struct{}

func (NopSurface) Totals(world.Category, string, string) {}
func (NopSurface) SlotChanged(int, world.Slot)           {}
func (NopSurface) Logged(Entry)                          {}
func (NopSurface) Cleared()                              {}
