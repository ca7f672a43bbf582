package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/impactgrid/impactgrid/internal/config"
	"github.com/impactgrid/impactgrid/internal/game"
	"github.com/impactgrid/impactgrid/internal/logging"
	"github.com/impactgrid/impactgrid/internal/render"
	"github.com/impactgrid/impactgrid/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Impact Grid"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45
)

// Fixed UI positions
const (
	hoverRow   = 1
	amountRow  = 3
	cardRow    = 5
	cardWidth  = 25
	cardHeight = 6

	slotX, slotY = 2, 13 // top-left slot of the donation grid
	slotStepX    = 2
	slotStepY    = 2

	logX     = 44
	logY     = 12
	logWidth = 34
	logRows  = 28

	promptTicks = 3 * game.TickRate
)

var cardNames = map[world.Category]string{
	world.CategoryEnvironmental: "Environmental",
	world.CategoryAnimal:        "Animal Welfare",
	world.CategoryEducation:     "Education",
}

var donateKeys = map[world.Category]ebiten.Key{
	world.CategoryEnvironmental: ebiten.KeyE,
	world.CategoryAnimal:        ebiten.KeyA,
	world.CategoryEducation:     ebiten.KeyS,
}

var donateLabels = map[world.Category]rune{
	world.CategoryEnvironmental: 'E',
	world.CategoryAnimal:        'A',
	world.CategoryEducation:     'S',
}

// button is a clickable run of cells on one row.
type button struct {
	x, y, w int
	press   func()
}

func (b button) hit(cx, cy int) bool {
	return cy == b.y && cx >= b.x && cx < b.x+b.w
}

// Game is the Ebitengine game struct. It owns rendering and input.
// All donation state lives in sim.
type Game struct {
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	sim      *game.Sim
	buttons  []button

	prompt      string
	promptUntil uint64
}

func NewGame(sim *game.Sim) *Game {
	atlas := render.NewFontAtlas()
	g := &Game{
		renderer: render.NewGridRenderer(atlas, cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		sim:      sim,
	}
	g.drawScreen()
	return g
}

func (g *Game) addButton(x, y int, label string, fg, bg uint8, press func()) int {
	w := g.buffer.WriteString(x, y, label, fg, bg)
	g.buttons = append(g.buttons, button{x: x, y: y, w: w, press: press})
	return w
}

func (g *Game) drawScreen() {
	buf := g.buffer
	buf.Clear()
	g.buttons = g.buttons[:0]

	buf.WriteString(2, 0, title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(16, 0, "See where every dollar goes", render.ColorDarkGray, render.ColorBlack)
	g.addButton(gridCols-11, 0, "[ Reset ]", render.ColorLightRed, render.ColorBlack, g.reset)

	g.drawAmounts()
	for i, c := range world.Categories {
		g.drawCard(2+i*(cardWidth+1), cardRow, c)
	}

	buf.DrawBox(slotX-2, slotY-2, world.GridWidth*slotStepX+3, world.GridHeight*slotStepY+3, render.ColorDarkGray)
	render.RenderSlotGrid(buf, g.sim.Grid, slotX, slotY, slotStepX, slotStepY)

	g.drawLog()

	if g.prompt != "" && g.sim.Ticks < g.promptUntil {
		buf.WriteString(2, gridRows-3, g.prompt, render.ColorLightRed, render.ColorBlack)
	}
	buf.WriteString(2, gridRows-1, "1-4: Amount  C: Custom  E/A/S: Donate  R: Reset  ESC: Quit", render.ColorDarkGray, render.ColorBlack)
}

func (g *Game) drawAmounts() {
	buf := g.buffer
	sel := &g.sim.Selection
	x := 2
	x += buf.WriteString(x, amountRow, "Amount: ", render.ColorLightGray, render.ColorBlack)
	for _, amt := range game.PresetAmounts {
		fg, bg := uint8(render.ColorLightGray), uint8(render.ColorBlack)
		if !sel.CustomActive() && sel.Preset == amt {
			fg, bg = render.ColorBlack, render.ColorLightGreen
		}
		x += g.addButton(x, amountRow, fmt.Sprintf(" $%d ", amt), fg, bg, func() { sel.ChoosePreset(amt) })
		x++
	}

	x += buf.WriteString(x+1, amountRow, "Custom: $", render.ColorLightGray, render.ColorBlack) + 1
	fg, bg := uint8(render.ColorLightGray), uint8(render.ColorDarkGray)
	text := sel.Custom
	if sel.CustomActive() {
		fg, bg = render.ColorWhite, render.ColorBlue
		if (g.sim.Ticks/30)%2 == 0 {
			text += "_"
		}
	}
	buf.Fill(x, amountRow, 10, 1, bg)
	buf.WriteString(x, amountRow, text, fg, bg)
	g.buttons = append(g.buttons, button{x: x, y: amountRow, w: 10, press: sel.FocusCustom})
}

func (g *Game) drawCard(x, y int, c world.Category) {
	buf := g.buffer
	accent := render.CategoryColor(c)
	buf.DrawBox(x, y, cardWidth, cardHeight, accent)
	buf.WriteString(x+2, y, " "+cardNames[c]+" ", accent, render.ColorBlack)

	l := g.sim.Ledger
	buf.WriteString(x+2, y+1, "Donated: "+l.DonatedDisplay(c), render.ColorLightGray, render.ColorBlack)
	buf.WriteString(x+2, y+2, "Spent:   "+l.SpentDisplay(c), render.ColorLightGray, render.ColorBlack)
	if n := g.sim.Sched.Pending(c); n > 0 {
		buf.WriteString(x+2, y+3, fmt.Sprintf("Placing %d...", n), render.ColorDarkGray, render.ColorBlack)
	}
	g.addButton(x+2, y+4, fmt.Sprintf("[ Donate (%c) ]", donateLabels[c]), render.ColorBlack, accent, func() { g.donate(c) })
}

func (g *Game) drawLog() {
	buf := g.buffer
	buf.DrawBox(logX-1, logY-1, logWidth+2, logRows+2, render.ColorDarkGray)
	buf.WriteString(logX, logY-1, " Impact Log ", render.ColorLightCyan, render.ColorBlack)

	row := 0
	for _, e := range g.sim.Log.Recent(logRows) {
		for _, line := range game.WrapText(e.String(), logWidth) {
			if row >= logRows {
				return
			}
			buf.WriteString(logX, logY+row, line, render.CategoryColor(e.Category), render.ColorBlack)
			row++
		}
	}
	if row == 0 {
		buf.WriteString(logX, logY, "Donations will appear here.", render.ColorDarkGray, render.ColorBlack)
	}
}

func (g *Game) donate(c world.Category) {
	err := g.sim.DonateSelected(c)
	if errors.Is(err, game.ErrNoAmount) {
		g.prompt = game.PromptNoAmount
		g.promptUntil = g.sim.Ticks + promptTicks
		return
	}
	if err != nil {
		log.Printf("donate: %v", err)
		return
	}
	g.prompt = ""
}

func (g *Game) reset() {
	g.prompt = ""
	g.sim.Reset()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.sim.Selection.CustomActive() {
			g.sim.Selection.Clear()
		} else {
			return ebiten.Termination
		}
	}

	sel := &g.sim.Selection
	if sel.CustomActive() {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r >= '0' && r <= '9' && len(sel.Custom) < 7 {
				sel.SetCustom(sel.Custom + string(r))
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(sel.Custom) > 0 {
			sel.SetCustom(sel.Custom[:len(sel.Custom)-1])
		}
	} else {
		for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
			if inpututil.IsKeyJustPressed(k) {
				sel.ChoosePreset(game.PresetAmounts[i])
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			sel.FocusCustom()
		}
	}

	for _, c := range world.Categories {
		if inpututil.IsKeyJustPressed(donateKeys[c]) {
			g.donate(c)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	mx, my := ebiten.CursorPosition()
	cellX, cellY := mx/cellWidth, my/cellHeight
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for _, b := range g.buttons {
			if b.hit(cellX, cellY) {
				b.press()
				break
			}
		}
	}

	g.sim.Tick()
	g.drawScreen()
	g.updateHoverInfo(cellX, cellY)

	fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	g.buffer.WriteString(gridCols-20, gridRows-1, fps, render.ColorDarkGray, render.ColorBlack)
	return nil
}

// updateHoverInfo describes whatever grid slot the mouse is over.
func (g *Game) updateHoverInfo(cellX, cellY int) {
	i := render.SlotAt(g.sim.Grid, cellX, cellY, slotX, slotY, slotStepX, slotStepY)
	if i < 0 {
		g.buffer.WriteString(2, hoverRow, "Hover over the grid to inspect", render.ColorDarkGray, render.ColorBlack)
		return
	}
	sl := g.sim.Grid.Get(i)
	if sl.Empty() {
		g.buffer.WriteString(2, hoverRow, fmt.Sprintf("Empty slot  [%d]", i), render.ColorDarkGray, render.ColorBlack)
		return
	}
	desc := fmt.Sprintf("%s (%s, stage %d)  %s  [%d]", sl.Image.Alt, sl.Category, sl.Stage, sl.Image.Path, i)
	g.buffer.WriteString(2, hoverRow, desc, render.ColorYellow, render.ColorBlack)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	logger, err := logging.New(config.LoggingConfig{Level: "warn"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.TickRate)

	g := NewGame(game.NewSim(game.WithLogger(logger)))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
