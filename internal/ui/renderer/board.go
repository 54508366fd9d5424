package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

var (
	TurretColor    = color.RGBA{30, 30, 30, 255}
	HealthBarBack  = color.RGBA{128, 128, 128, 128}
	HealthBarColor = color.RGBA{0, 255, 0, 255}
)

const (
	unitRadius   = 7
	turretLength = 11
	baseFraction = 0.6
)

type BoardRenderer struct {
	tileSize    float32
	defaultFont font.Face
	palette     Palette

	// background caches the terrain layer; it is rebuilt when the terrain
	// of the snapshot differs from the one it was drawn from.
	background *ebiten.Image
	terrain    []core.TerrainClass
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize float64, f font.Face, p Palette) *BoardRenderer {
	return &BoardRenderer{tileSize: float32(tileSize), defaultFont: f, palette: p}
}

// SetPalette switches colours and drops the cached terrain layer.
func (br *BoardRenderer) SetPalette(p Palette) {
	br.palette = p
	br.terrain = nil
}

// Draw renders terrain, bases, units and bullets.
func (br *BoardRenderer) Draw(screen *ebiten.Image, s *game.Snapshot) {
	br.ensureBackground(s)
	screen.DrawImage(br.background, nil)

	for _, b := range s.Bases {
		br.drawBase(screen, b)
	}
	for _, u := range s.Units {
		br.drawUnit(screen, u)
	}
	for _, b := range s.Bullets {
		vector.DrawFilledCircle(screen, float32(b.Position.X), float32(b.Position.Y),
			float32(b.Size/2), br.palette.Faction(b.Faction), true)
	}
}

func (br *BoardRenderer) ensureBackground(s *game.Snapshot) {
	if br.background != nil && terrainEqual(br.terrain, s.Tiles) {
		return
	}
	w, h := int(float32(s.Width)*br.tileSize), int(float32(s.Height)*br.tileSize)
	if br.background == nil || br.background.Bounds().Dx() != w || br.background.Bounds().Dy() != h {
		br.background = ebiten.NewImage(w, h)
	}

	br.terrain = br.terrain[:0]
	for i, t := range s.Tiles {
		x, y := i%s.Width, i/s.Width
		vector.DrawFilledRect(br.background,
			float32(x)*br.tileSize, float32(y)*br.tileSize, br.tileSize, br.tileSize,
			br.palette.Terrain[t.Terrain], false)
		br.terrain = append(br.terrain, t.Terrain)
	}
}

func terrainEqual(cached []core.TerrainClass, tiles []game.TileView) bool {
	if len(cached) != len(tiles) {
		return false
	}
	for i := range tiles {
		if cached[i] != tiles[i].Terrain {
			return false
		}
	}
	return true
}

func (br *BoardRenderer) drawBase(screen *ebiten.Image, b game.BaseView) {
	c := br.palette.Faction(b.Faction)
	x, y := float32(b.Position.X), float32(b.Position.Y)

	vector.StrokeCircle(screen, x, y, float32(b.SpawnRadius), 1, withAlpha(c, 110), true)

	side := br.tileSize * baseFraction
	vector.DrawFilledRect(screen, x-side/2, y-side/2, side, side, c, false)
	vector.StrokeRect(screen, x-side/2, y-side/2, side, side, 1, TurretColor, false)
}

func (br *BoardRenderer) drawUnit(screen *ebiten.Image, u game.UnitView) {
	x, y := float32(u.Position.X), float32(u.Position.Y)

	// hull: a short line along the body heading under the body disc
	hull := core.FromHeading(u.Heading).Scale(unitRadius)
	hx, hy := float32(hull.X), float32(hull.Y)
	vector.StrokeLine(screen, x-hx, y-hy, x+hx, y+hy, 8, withAlpha(TurretColor, 160), true)
	vector.DrawFilledCircle(screen, x, y, unitRadius-1, br.palette.Faction(u.Faction), true)

	turret := core.FromHeading(u.TurretHeading).Scale(turretLength)
	tx, ty := float32(turret.X), float32(turret.Y)
	vector.StrokeLine(screen, x, y, x+tx, y+ty, 3, TurretColor, true)

	vector.DrawFilledRect(screen, x-8, y-12, 16, 4, HealthBarBack, false)
	vector.DrawFilledRect(screen, x-7, y-11, float32(14*u.HealthFraction), 2, HealthBarColor, false)
}
