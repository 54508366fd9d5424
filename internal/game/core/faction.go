package core

import "fmt"

// Faction tags ownership of bases, units and bullets.
type Faction int

const (
	Neutral Faction = iota
	Player
	Computer
)

// Factions lists the factions that hold currency and field units.
var Factions = []Faction{Player, Computer}

func (f Faction) String() string {
	switch f {
	case Neutral:
		return "neutral"
	case Player:
		return "player"
	case Computer:
		return "computer"
	default:
		return fmt.Sprintf("faction(%d)", int(f))
	}
}

// IsCombatant is true for factions that can own units.
func (f Faction) IsCombatant() bool {
	return f == Player || f == Computer
}

// ParseFaction converts a config or CLI string into a Faction.
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "neutral":
		return Neutral, nil
	case "player":
		return Player, nil
	case "computer":
		return Computer, nil
	default:
		return Neutral, fmt.Errorf("%w: %q", ErrInvalidFaction, s)
	}
}
