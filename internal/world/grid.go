package world

import "fmt"

// Grid dimensions. Slots are addressed by a flat index; the 20x10 layout only
// matters to renderers.
const (
	GridWidth  = 20
	GridHeight = 10
	GridSize   = GridWidth * GridHeight // 200
)

// Category identifies one of the three charities.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryEnvironmental
	CategoryAnimal
	CategoryEducation
	CategoryCount // sentinel
)

// Categories lists the real categories in their fixed processing order.
var Categories = []Category{CategoryEnvironmental, CategoryAnimal, CategoryEducation}

var categoryIDs = [CategoryCount]string{
	CategoryNone:          "",
	CategoryEnvironmental: "environmental",
	CategoryAnimal:        "animal",
	CategoryEducation:     "education",
}

// String returns the category identifier used by the selection UI and the API.
func (c Category) String() string {
	if c < CategoryCount {
		return categoryIDs[c]
	}
	return "unknown"
}

// ParseCategory maps a category identifier back to a Category.
func ParseCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if categoryIDs[c] == id {
			return c, true
		}
	}
	return CategoryNone, false
}

// MarshalText encodes the category as its identifier.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category identifier.
func (c *Category) UnmarshalText(b []byte) error {
	got, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", b)
	}
	*c = got
	return nil
}

// OccupantKind is what is drawn in a slot.
type OccupantKind uint8

const (
	OccupantNone    OccupantKind = iota // empty slot
	OccupantTree                        // environmental, staged 0-2
	OccupantShelter                     // animal shelter
	OccupantAnimal                      // rescued animal
	OccupantSchool                      // school building, staged 0-3
	OccupantStudent                     // enrolled student
)

var occupantNames = map[OccupantKind]string{
	OccupantNone:    "empty",
	OccupantTree:    "tree",
	OccupantShelter: "shelter",
	OccupantAnimal:  "animal",
	OccupantSchool:  "school",
	OccupantStudent: "student",
}

func (k OccupantKind) String() string {
	if n, ok := occupantNames[k]; ok {
		return n
	}
	return "unknown"
}

// ImageRef is what the rendering surface injects into a slot.
type ImageRef struct {
	Path string `json:"path"`
	Alt  string `json:"alt"`
}

// Slot is a single grid position.
type Slot struct {
	Occupant OccupantKind
	Category Category
	Stage    int // tree growth stage or school construction stage
	Image    ImageRef
}

// Empty reports whether nothing is drawn in the slot.
func (s Slot) Empty() bool { return s.Occupant == OccupantNone }

// Grid is the fixed-size ordered slot store.
type Grid struct {
	Width  int
	Height int
	Slots  []Slot
}

// NewGrid creates an empty 20x10 grid.
func NewGrid() *Grid {
	return &Grid{
		Width:  GridWidth,
		Height: GridHeight,
		Slots:  make([]Slot, GridSize),
	}
}

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.Slots) }

// Get returns the slot at index i. Out-of-range returns an empty slot.
func (g *Grid) Get(i int) Slot {
	if i < 0 || i >= len(g.Slots) {
		return Slot{}
	}
	return g.Slots[i]
}

// At returns the slot at column x, row y.
func (g *Grid) At(x, y int) Slot {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Slot{}
	}
	return g.Slots[y*g.Width+x]
}

// Occupy writes the slot at index i. Out-of-range writes are ignored.
func (g *Grid) Occupy(i int, s Slot) {
	if i >= 0 && i < len(g.Slots) {
		g.Slots[i] = s
	}
}

// EmptySlots returns the indices of all empty slots in position order.
// It is recomputed on every call since the grid mutates between calls.
func (g *Grid) EmptySlots() []int {
	var out []int
	for i, s := range g.Slots {
		if s.Empty() {
			out = append(out, i)
		}
	}
	return out
}

// FirstEmpty returns the lowest empty index, or -1 if the grid is full.
func (g *Grid) FirstEmpty() int {
	for i, s := range g.Slots {
		if s.Empty() {
			return i
		}
	}
	return -1
}

// Find returns the indices of slots matching pred, in position order.
func (g *Grid) Find(pred func(Slot) bool) []int {
	var out []int
	for i, s := range g.Slots {
		if pred(s) {
			out = append(out, i)
		}
	}
	return out
}

// Occupied returns the number of non-empty slots.
func (g *Grid) Occupied() int {
	n := 0
	for _, s := range g.Slots {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Full reports whether no empty slot remains.
func (g *Grid) Full() bool { return g.FirstEmpty() < 0 }

// CountOccupant returns the number of slots holding the given occupant kind.
func (g *Grid) CountOccupant(kind OccupantKind) int {
	n := 0
	for _, s := range g.Slots {
		if s.Occupant == kind {
			n++
		}
	}
	return n
}

// ClearAll empties every slot and strips category and stage metadata.
func (g *Grid) ClearAll() {
	for i := range g.Slots {
		g.Slots[i] = Slot{}
	}
}
