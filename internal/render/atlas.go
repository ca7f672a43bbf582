package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// FontAtlas holds the CP437 glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas generates the glyph atlas at startup. Printable ASCII comes
// from basicfont.Face7x13; box, block and grid-occupant glyphs are drawn by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cx := (code % AtlasCols) * GlyphWidth
		cy := (code / AtlasCols) * GlyphHeight

		if code >= 32 && code <= 126 {
			drawFontGlyph(img, face, cx, cy, rune(code))
			continue
		}
		if bc, ok := boxChars[byte(code)]; ok {
			drawBoxGlyph(img, cx, cy, bc[0], bc[1], bc[2], bc[3])
			continue
		}
		if draw, ok := iconGlyphs[byte(code)]; ok {
			draw(pen{img: img, x: cx, y: cy})
			continue
		}
		drawBlockGlyph(img, cx, cy, byte(code))
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		x := (code % AtlasCols) * GlyphWidth
		y := (code / AtlasCols) * GlyphHeight
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a CP437 character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// drawFontGlyph renders a single ASCII character into the atlas.
// basicfont.Face7x13 glyphs are 7x13, centered in a 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

// boxChars maps CP437 codes to single-line box connection flags: {left, right, top, bottom}.
var boxChars = map[byte][4]bool{
	179: {false, false, true, true}, // │
	191: {true, false, false, true}, // ┐
	192: {false, true, true, false}, // └
	196: {true, true, false, false}, // ─
	217: {true, false, true, false}, // ┘
	218: {false, true, false, true}, // ┌
}

// drawBoxGlyph draws a single-line box-drawing character.
// Lines are 2 pixels wide, centered in the 16x16 cell.
func drawBoxGlyph(img *image.NRGBA, cellX, cellY int, left, right, top, bottom bool) {
	p := pen{img: img, x: cellX, y: cellY}
	if left {
		p.rect(0, 7, 9, 2)
	}
	if right {
		p.rect(7, 7, GlyphWidth-7, 2)
	}
	if top {
		p.rect(7, 0, 2, 9)
	}
	if bottom {
		p.rect(7, 7, 2, GlyphHeight-7)
	}
}

// pen draws white pixels relative to one atlas cell.
type pen struct {
	img  *image.NRGBA
	x, y int
}

func (p pen) dot(x, y int) {
	if x >= 0 && x < GlyphWidth && y >= 0 && y < GlyphHeight {
		p.img.SetNRGBA(p.x+x, p.y+y, color.NRGBA{255, 255, 255, 255})
	}
}

func (p pen) rect(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.dot(xx, yy)
		}
	}
}

func (p pen) disc(cx, cy, r int) {
	for yy := -r; yy <= r; yy++ {
		for xx := -r; xx <= r; xx++ {
			if xx*xx+yy*yy <= r*r {
				p.dot(cx+xx, cy+yy)
			}
		}
	}
}

// triangle fills an upward triangle with its apex at (cx, top).
func (p pen) triangle(cx, top, height int) {
	for i := 0; i < height; i++ {
		p.rect(cx-i, top+i, 2*i+1, 1)
	}
}

var iconGlyphs = map[byte]func(pen){
	GlyphStudent: func(p pen) {
		p.disc(7, 7, 6)
		for _, d := range [][2]int{{5, 5}, {9, 5}} {
			p.img.SetNRGBA(p.x+d[0], p.y+d[1], color.NRGBA{})
		}
		for x := 4; x <= 10; x++ {
			p.img.SetNRGBA(p.x+x, p.y+10, color.NRGBA{})
		}
	},
	GlyphAnimal: func(p pen) {
		p.disc(5, 5, 3)
		p.disc(10, 5, 3)
		p.triangle(7, 6, 7)
	},
	GlyphTree: func(p pen) {
		p.disc(7, 4, 3)
		p.disc(4, 8, 3)
		p.disc(11, 8, 3)
		p.rect(7, 9, 2, 6)
	},
	GlyphYoung: func(p pen) {
		p.triangle(7, 2, 8)
		p.rect(7, 10, 2, 5)
	},
	GlyphRoof: func(p pen) {
		p.triangle(7, 3, 10)
	},
	GlyphSapling: func(p pen) {
		p.rect(3, 5, 10, 2)
		p.rect(7, 5, 2, 9)
	},
	GlyphEmpty: func(p pen) {
		p.rect(7, 7, 2, 2)
	},
	GlyphHouse: func(p pen) {
		p.triangle(7, 1, 6)
		p.rect(3, 7, 2, 7)
		p.rect(11, 7, 2, 7)
		p.rect(3, 12, 10, 2)
		p.rect(7, 9, 2, 5)
	},
}

// drawBlockGlyph draws block elements and shading characters.
func drawBlockGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	p := pen{img: img, x: cellX, y: cellY}
	switch code {
	case 176: // ░
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if (x+y)%4 == 0 {
					p.dot(x, y)
				}
			}
		}
	case 177: // ▒
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if (x+y)%2 == 0 {
					p.dot(x, y)
				}
			}
		}
	case 219: // █
		p.rect(0, 0, GlyphWidth, GlyphHeight)
	case 220: // ▄
		p.rect(0, GlyphHeight/2, GlyphWidth, GlyphHeight/2)
	case 223: // ▀
		p.rect(0, 0, GlyphWidth, GlyphHeight/2)
	case 254: // ■
		p.rect(4, 4, 8, 8)
	}
}
