package render

import (
	"path"
	"strings"

	"github.com/impactgrid/impactgrid/internal/world"
)

// Glyph codes for grid occupants.
const (
	GlyphSapling = 231 // τ
	GlyphYoung   = 6   // ♠
	GlyphTree    = 5   // ♣
	GlyphHouse   = 127 // ⌂ shelter, finished school
	GlyphStudent = 1   // ☺
	GlyphAnimal  = 3   // ♥ fallback when the image name gives no letter
	GlyphEmpty   = 250 // ·
	GlyphBase    = 220 // ▄ school foundation
	GlyphWalls   = 254 // ■
	GlyphRoof    = 30  // ▲
)

var treeGlyphs = []byte{GlyphSapling, GlyphYoung, GlyphTree}

var schoolGlyphs = []byte{GlyphBase, GlyphWalls, GlyphRoof, GlyphHouse}

// RenderSlotGrid writes the donation grid into a CellBuffer. Each slot takes
// one cell, placed every stepX columns and stepY rows from the offset.
func RenderSlotGrid(buf *CellBuffer, grid *world.Grid, offsetX, offsetY, stepX, stepY int) {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			glyph, fg, bg := SlotVisuals(grid.At(x, y))
			buf.Set(offsetX+x*stepX, offsetY+y*stepY, glyph, fg, bg)
		}
	}
}

// SlotAt maps a buffer cell back to a grid index, or -1.
func SlotAt(grid *world.Grid, cellX, cellY, offsetX, offsetY, stepX, stepY int) int {
	dx, dy := cellX-offsetX, cellY-offsetY
	if dx < 0 || dy < 0 || dx%stepX != 0 || dy%stepY != 0 {
		return -1
	}
	x, y := dx/stepX, dy/stepY
	if x >= grid.Width || y >= grid.Height {
		return -1
	}
	return y*grid.Width + x
}

// SlotVisuals returns the glyph and colors for a grid slot.
func SlotVisuals(sl world.Slot) (glyph byte, fg, bg uint8) {
	switch sl.Occupant {
	case world.OccupantTree:
		col := uint8(ColorLightGreen)
		if strings.Contains(strings.ToLower(path.Base(sl.Image.Path)), "autumn") {
			col = ColorBrown
		}
		return stageGlyph(treeGlyphs, sl.Stage), col, ColorBlack
	case world.OccupantShelter:
		return GlyphHouse, ColorBrown, ColorBlack
	case world.OccupantAnimal:
		return animalGlyph(sl.Image.Path), ColorYellow, ColorBlack
	case world.OccupantSchool:
		if sl.Stage >= len(schoolGlyphs)-1 {
			return GlyphHouse, ColorWhite, ColorBlue
		}
		return stageGlyph(schoolGlyphs, sl.Stage), ColorLightCyan, ColorBlack
	case world.OccupantStudent:
		return GlyphStudent, ColorWhite, ColorBlack
	default:
		return GlyphEmpty, ColorDarkGray, ColorBlack
	}
}

func stageGlyph(glyphs []byte, stage int) byte {
	switch {
	case stage < 0:
		return glyphs[0]
	case stage >= len(glyphs):
		return glyphs[len(glyphs)-1]
	default:
		return glyphs[stage]
	}
}

// animalGlyph uses the first letter of the image file: cat.png is 'c'.
func animalGlyph(p string) byte {
	base := path.Base(p)
	if base == "" || base == "." || base == "/" {
		return GlyphAnimal
	}
	ch := base[0]
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	if ch < 'a' || ch > 'z' {
		return GlyphAnimal
	}
	return ch
}
