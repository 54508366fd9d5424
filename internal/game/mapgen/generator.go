package mapgen

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width          int
	Height         int
	TileSize       float64
	HUDReserve     int     // cells kept flat in the bottom-right corner
	NoiseFrequency float64 // noise sample step per cell
	BaseCount      int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int, tileSize float64) MapConfig {
	return MapConfig{
		Width:          w,
		Height:         h,
		TileSize:       tileSize,
		HUDReserve:     4,
		NoiseFrequency: 0.10,
		BaseCount:      7,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a classified terrain grid and returns it with the
// thresholds used to classify it.
func (g *Generator) GenerateMap() (*core.Grid, core.Thresholds) {
	grid := g.GenerateHeights()
	th := ClassifyThresholds(grid)
	grid.Classify(th)
	return grid, th
}

// GenerateHeights fills a fresh grid with noise heights in [0,1). The
// bottom-right HUD corner is flattened to sea level.
func (g *Generator) GenerateHeights() *core.Grid {
	c := g.config
	grid := core.NewGrid(c.Width, c.Height, c.TileSize)
	noise := opensimplex.NewNormalized(g.rng.Int63())

	for i := range grid.T {
		t := &grid.T[i]
		if g.inHUDCorner(t.X, t.Y) {
			t.Height = 0
			continue
		}
		t.Height = noise.Eval2(float64(t.X)*c.NoiseFrequency, float64(t.Y)*c.NoiseFrequency)
	}
	return grid
}

func (g *Generator) inHUDCorner(x, y int) bool {
	r := g.config.HUDReserve
	return x > g.config.Width-1-r && y > g.config.Height-1-r
}

// ClassifyThresholds derives the sand, soil and forest cut-offs from the
// grid's height distribution. The range is measured from sea level, so a
// grid that is uniformly 0 collapses every threshold to 0 (all water) while
// a uniform positive height still classifies as sand.
func ClassifyThresholds(grid *core.Grid) core.Thresholds {
	if len(grid.T) == 0 {
		return core.Thresholds{}
	}

	var lo, hi, sum float64
	for i := range grid.T {
		h := grid.T[i].Height
		sum += h
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	mean := sum / float64(len(grid.T))
	span := hi - lo

	return core.Thresholds{
		Sand:   mean - span/10,
		Soil:   mean,
		Forest: mean + span/6,
	}
}
