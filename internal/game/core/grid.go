package core

import "github.com/mitchelldurbincs/GridSkirmish/internal/common"

// Tile is a single cell of the grid.
// Base, Occupant and Reserved are handles into the entity store; the zero
// handle means none.
type Tile struct {
	X, Y     int
	Center   Vec2
	Height   float64
	Terrain  TerrainClass
	Base     Handle
	Occupant Handle
	Reserved Handle // unit currently driving into this cell
}

// Coord returns the tile's grid coordinate.
func (t *Tile) Coord() Coordinate { return Coordinate{X: t.X, Y: t.Y} }

func (t *Tile) HasBase() bool { return !t.Base.IsNil() }
func (t *Tile) IsOccupied() bool { return !t.Occupant.IsNil() }
func (t *Tile) IsReserved() bool { return !t.Reserved.IsNil() }

// IsFree reports whether a unit could be placed here right now.
func (t *Tile) IsFree() bool { return !t.IsOccupied() && !t.IsReserved() }

type Grid struct {
	W, H     int
	TileSize float64
	T        []Tile // length = W*H (row-major)
}

// NewGrid builds a W×H grid of flat water tiles with pixel centres laid out
// at tileSize spacing.
func NewGrid(w, h int, tileSize float64) *Grid {
	g := &Grid{W: w, H: h, TileSize: tileSize, T: make([]Tile, w*h)}
	for i := range g.T {
		c := FromIndex(i, w)
		g.T[i].X = c.X
		g.T[i].Y = c.Y
		g.T[i].Center = Vec2{
			X: float64(c.X)*tileSize + tileSize/2,
			Y: float64(c.Y)*tileSize + tileSize/2,
		}
	}
	return g
}

func (g *Grid) Idx(x, y int) int { return y*g.W + x }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Tile safely returns a tile pointer if coordinates are valid, nil otherwise
func (g *Grid) Tile(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.T[g.Idx(x, y)]
}

// At is Tile for a Coordinate.
func (g *Grid) At(c Coordinate) *Tile {
	if !c.IsValid(g.W, g.H) {
		return nil
	}
	return &g.T[c.ToIndex(g.W)]
}

// CellAt returns the tile under a world position. Positions outside the
// grid are clamped onto the nearest edge tile, so the result is never nil
// for a non-empty grid.
func (g *Grid) CellAt(worldX, worldY float64) *Tile {
	x := int(common.Clamp(worldX/g.TileSize, 0, float64(g.W-1)))
	y := int(common.Clamp(worldY/g.TileSize, 0, float64(g.H-1)))
	return &g.T[g.Idx(x, y)]
}

// WidthPx and HeightPx are the world-space extents of the grid.
func (g *Grid) WidthPx() float64 { return float64(g.W) * g.TileSize }
func (g *Grid) HeightPx() float64 { return float64(g.H) * g.TileSize }

// Classify recomputes every tile's terrain class from its height.
func (g *Grid) Classify(th Thresholds) {
	for i := range g.T {
		g.T[i].Terrain = th.Classify(g.T[i].Height)
	}
}

// OccupantOf returns the coordinates of every tile whose occupant is h.
// Used by invariant checks; a healthy grid yields at most one.
func (g *Grid) OccupantOf(h Handle) []Coordinate {
	var out []Coordinate
	for i := range g.T {
		if g.T[i].Occupant == h {
			out = append(out, g.T[i].Coord())
		}
	}
	return out
}
