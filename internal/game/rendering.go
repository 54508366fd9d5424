package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// ANSI color codes for Board rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const (
	waterSymbol  = '~'
	sandSymbol   = '.'
	soilSymbol   = ','
	forestSymbol = '^'
)

// Board returns a text rendering of the map for terminals and logs. Bases
// are upper case, units lower case (p/c/n by faction). A unit standing on
// a base is shown instead of the base.
func (e *Engine) Board(color bool) string {
	g := e.grid

	var sb strings.Builder
	sb.Grow((g.W*12 + 8) * (g.H + 4))

	sb.WriteString("   ")
	for x := 0; x < g.W; x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteString("\n")

	for y := 0; y < g.H; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < g.W; x++ {
			code, sym := e.tileDisplay(g.Tile(x, y))
			if color {
				sb.WriteString(code)
				sb.WriteByte(sym)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteByte(sym)
			}
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n~=water .=sand ,=soil ^=forest P/C/N=base p/c=unit\n%s phase=%s\n",
		e.ledger, e.Phase())
	return sb.String()
}

func (e *Engine) tileDisplay(t *core.Tile) (string, byte) {
	if u := e.store.Unit(t.Occupant); u != nil {
		return factionColor(u.Faction), factionLetter(u.Faction) + ('a' - 'A')
	}
	if b := e.store.Bases.Get(t.Base); b != nil {
		return factionColor(b.Faction), factionLetter(b.Faction)
	}
	switch t.Terrain {
	case core.Forest:
		return ColorGreen, forestSymbol
	case core.Soil:
		return ColorGreen, soilSymbol
	case core.Sand:
		return ColorYellow, sandSymbol
	default:
		return ColorCyan, waterSymbol
	}
}

func factionLetter(f core.Faction) byte {
	switch f {
	case core.Player:
		return 'P'
	case core.Computer:
		return 'C'
	default:
		return 'N'
	}
}

func factionColor(f core.Faction) string {
	switch f {
	case core.Player:
		return ColorBlue
	case core.Computer:
		return ColorRed
	default:
		return ColorWhite
	}
}
