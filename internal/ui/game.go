package ui

import (
	"errors"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/ui/input"
	"github.com/mitchelldurbincs/GridSkirmish/internal/ui/renderer"
)

// maxFrameDt caps the step after a stall (window drag, breakpoint) so
// bullets do not tunnel past their targets.
const maxFrameDt = 100 * time.Millisecond

var backgroundColor = color.RGBA{R: 50, G: 50, B: 50, A: 255}

var keyBindings = map[ebiten.Key]input.Key{
	ebiten.KeyDigit1: input.KeySpawnPlayer,
	ebiten.KeyDigit2: input.KeySpawnComputer,
	ebiten.KeyDigit3: input.KeyBasePlayer,
	ebiten.KeyDigit4: input.KeyBaseComputer,
	ebiten.KeyR:      input.KeyReset,
	ebiten.KeyEscape: input.KeyCancel,
}

// UIGame drives an engine from the Ebitengine loop.
type UIGame struct {
	engine  *game.Engine
	clock   game.Clock
	handler *input.Handler
	logger  zerolog.Logger

	boardRenderer *renderer.BoardRenderer
	overlay       *renderer.Overlay
	defaultFont   font.Face

	human    core.Faction
	lastStep time.Duration

	mu             sync.Mutex
	pendingPalette *renderer.Palette
}

// NewUIGame creates a new Ebitengine game instance.
func NewUIGame(engine *game.Engine, palette renderer.Palette, logger zerolog.Logger) *UIGame {
	grid := engine.Grid()
	g := &UIGame{
		engine:      engine,
		clock:       game.NewSystemClock(),
		handler:     input.NewHandler(grid.TileSize, grid.W, grid.H),
		logger:      logger.With().Str("component", "UIGame").Logger(),
		defaultFont: basicfont.Face7x13,
		human:       core.Player,
	}
	g.handler.SetSelector(engine.SelectableUnit)
	g.boardRenderer = renderer.NewBoardRenderer(grid.TileSize, g.defaultFont, palette)
	g.overlay = renderer.NewOverlay(grid.TileSize, g.defaultFont, palette)
	g.lastStep = g.clock.Now()
	return g
}

// SetPalette queues new colours for the next Update. It is safe to call
// from any goroutine, such as a config watcher.
func (g *UIGame) SetPalette(p renderer.Palette) {
	g.mu.Lock()
	g.pendingPalette = &p
	g.mu.Unlock()
}

func (g *UIGame) applyPalette() {
	g.mu.Lock()
	p := g.pendingPalette
	g.pendingPalette = nil
	g.mu.Unlock()
	if p == nil {
		return
	}
	g.boardRenderer.SetPalette(*p)
	g.overlay.SetPalette(*p)
	g.logger.Info().Msg("Palette reloaded")
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	g.applyPalette()
	g.pollInput()
	input.Dispatch(g.engine, g.handler.Drain(), g.logger)

	now := g.clock.Now()
	dt := now - g.lastStep
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	g.lastStep = now

	if err := g.engine.Step(now, dt); err != nil && !errors.Is(err, core.ErrGameOver) {
		return err
	}
	return nil
}

func (g *UIGame) pollInput() {
	x, y := ebiten.CursorPosition()
	g.handler.MouseMoved(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.handler.Press(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.handler.Release()
	}
	for k, bound := range keyBindings {
		if inpututil.IsKeyJustPressed(k) {
			g.handler.KeyPressed(bound)
		}
	}
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.engine.Snapshot()
	g.boardRenderer.Draw(screen, &snap)

	g.overlay.DrawHover(screen, g.handler.Hovered())
	if unit, path, ok := g.handler.Drag(); ok {
		g.overlay.DrawPreview(screen, g.engine.SelectionPreview(unit, path))
	}
	g.overlay.DrawHUD(screen, &snap, g.human)
	if g.engine.IsGameOver() {
		g.overlay.DrawWinner(screen, snap.Winner)
	}
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	grid := g.engine.Grid()
	return int(grid.WidthPx()), int(grid.HeightPx())
}
