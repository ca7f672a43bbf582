package render

import (
	"image/color"

	"github.com/impactgrid/impactgrid/internal/world"
)

// CGA 16-color palette indices.
const (
	ColorBlack        = 0
	ColorBlue         = 1
	ColorGreen        = 2
	ColorCyan         = 3
	ColorRed          = 4
	ColorMagenta      = 5
	ColorBrown        = 6
	ColorLightGray    = 7
	ColorDarkGray     = 8
	ColorLightBlue    = 9
	ColorLightGreen   = 10
	ColorLightCyan    = 11
	ColorLightRed     = 12
	ColorLightMagenta = 13
	ColorYellow       = 14
	ColorWhite        = 15
)

// Palette contains the classic CGA 16-color palette.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},
	{0, 0, 170, 255},
	{0, 170, 0, 255},
	{0, 170, 170, 255},
	{170, 0, 0, 255},
	{170, 0, 170, 255},
	{170, 85, 0, 255},
	{170, 170, 170, 255},
	{85, 85, 85, 255},
	{85, 85, 255, 255},
	{85, 255, 85, 255},
	{85, 255, 255, 255},
	{255, 85, 85, 255},
	{255, 85, 255, 255},
	{255, 255, 85, 255},
	{255, 255, 255, 255},
}

// CategoryColor is the accent used for a charity's card, totals and log lines.
func CategoryColor(c world.Category) uint8 {
	switch c {
	case world.CategoryEnvironmental:
		return ColorLightGreen
	case world.CategoryAnimal:
		return ColorYellow
	case world.CategoryEducation:
		return ColorLightCyan
	default:
		return ColorLightGray
	}
}
