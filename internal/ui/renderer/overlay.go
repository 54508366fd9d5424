package renderer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

var (
	HoverColor   = color.RGBA{255, 255, 255, 255}
	PreviewColor = color.RGBA{255, 255, 255, 255}
	BannerBack   = color.RGBA{0, 0, 0, 170}
)

// Overlay draws the interactive layer on top of the board: the hovered
// cell, the path being dragged, the funds readout and the end banner.
type Overlay struct {
	tileSize float32
	font     font.Face
	palette  Palette
}

func NewOverlay(tileSize float64, f font.Face, p Palette) *Overlay {
	return &Overlay{tileSize: float32(tileSize), font: f, palette: p}
}

func (o *Overlay) SetPalette(p Palette) { o.palette = p }

func (o *Overlay) DrawHover(screen *ebiten.Image, c core.Coordinate) {
	x, y := float32(c.X)*o.tileSize, float32(c.Y)*o.tileSize
	vector.StrokeRect(screen, x+1, y+1, o.tileSize-2, o.tileSize-2, 2, HoverColor, false)
}

func (o *Overlay) DrawPreview(screen *ebiten.Image, segs []game.PreviewSegment) {
	for _, s := range segs {
		vector.StrokeLine(screen, float32(s.From.X), float32(s.From.Y), float32(s.To.X), float32(s.To.Y),
			2, PreviewColor, true)
		if s.Marker {
			vector.DrawFilledCircle(screen, float32(s.From.X), float32(s.From.Y), 3, PreviewColor, true)
		}
	}
	if n := len(segs); n > 0 {
		end := segs[n-1].To
		vector.StrokeCircle(screen, float32(end.X), float32(end.Y), 5, 2, PreviewColor, true)
	}
}

// DrawHUD prints the human faction's funds in the bottom-right corner.
func (o *Overlay) DrawHUD(screen *ebiten.Image, s *game.Snapshot, human core.Faction) {
	msg := fmt.Sprintf("%s: %d", human, s.Funds[human])
	b := text.BoundString(o.font, msg)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x, y := sw-b.Dx()-8, sh-6

	vector.DrawFilledRect(screen, float32(x-4), float32(y+b.Min.Y-4), float32(b.Dx()+8), float32(b.Dy()+8), BannerBack, false)
	text.Draw(screen, msg, o.font, x, y, o.palette.Faction(human))
}

func (o *Overlay) DrawWinner(screen *ebiten.Image, winner core.Faction) {
	msg := fmt.Sprintf("%s wins - press R to restart", winner)
	b := text.BoundString(o.font, msg)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	vector.DrawFilledRect(screen, 0, float32(sh/2-20), float32(sw), 40, BannerBack, false)
	text.Draw(screen, msg, o.font, (sw-b.Dx())/2, sh/2+4, o.palette.Faction(winner))
}
