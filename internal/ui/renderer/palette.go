package renderer

import (
	"image/color"

	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// Palette holds the faction and terrain colours.
type Palette struct {
	Factions map[core.Faction]color.RGBA
	Terrain  map[core.TerrainClass]color.RGBA
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
}

// PaletteFromConfig builds a palette from validated config colours.
func PaletteFromConfig(c config.ColorsConfig) Palette {
	return Palette{
		Factions: map[core.Faction]color.RGBA{
			core.Neutral:  rgb(c.Neutral),
			core.Player:   rgb(c.Player),
			core.Computer: rgb(c.Computer),
		},
		Terrain: map[core.TerrainClass]color.RGBA{
			core.Water:  rgb(c.Water),
			core.Sand:   rgb(c.Sand),
			core.Soil:   rgb(c.Soil),
			core.Forest: rgb(c.Forest),
		},
	}
}

func (p Palette) Faction(f core.Faction) color.RGBA {
	if c, ok := p.Factions[f]; ok {
		return c
	}
	return p.Factions[core.Neutral]
}

// withAlpha returns c at alpha a, premultiplied as image/color expects.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}
