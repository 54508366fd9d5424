package economy

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// Config holds the economy constants.
type Config struct {
	StartingFunds int
	TickInterval  time.Duration
	IncomePerBase int
}

func DefaultConfig() Config {
	return Config{
		StartingFunds: 300,
		TickInterval:  time.Second,
		IncomePerBase: 2,
	}
}

// Ledger tracks currency per combatant faction and pays income on a fixed
// simulated-time cadence.
type Ledger struct {
	cfg      Config
	balances map[core.Faction]int
	anchor   time.Duration
}

func NewLedger(cfg Config) *Ledger {
	l := &Ledger{cfg: cfg}
	l.Reset(0)
	return l
}

// Reset restores starting funds and re-anchors the income clock at now.
func (l *Ledger) Reset(now time.Duration) {
	l.balances = make(map[core.Faction]int, len(core.Factions))
	for _, f := range core.Factions {
		l.balances[f] = l.cfg.StartingFunds
	}
	l.anchor = now
}

// Balance returns f's current funds. Neutral always has none.
func (l *Ledger) Balance(f core.Faction) int {
	return l.balances[f]
}

// Tick pays owned(f)*IncomePerBase to every combatant faction when a full
// interval has elapsed since the last payout. The anchor advances by
// exactly one interval, so a late step does not lose time, and at most one
// payout happens per call.
func (l *Ledger) Tick(now time.Duration, owned func(core.Faction) int) bool {
	if now-l.anchor < l.cfg.TickInterval {
		return false
	}
	for _, f := range core.Factions {
		l.balances[f] += owned(f) * l.cfg.IncomePerBase
	}
	l.anchor += l.cfg.TickInterval
	return true
}

// TrySpend deducts cost from f when the balance covers it.
func (l *Ledger) TrySpend(f core.Faction, cost int) bool {
	if !f.IsCombatant() || l.balances[f] < cost {
		return false
	}
	l.balances[f] -= cost
	return true
}

// CanAfford reports whether f could pay cost without spending it.
func (l *Ledger) CanAfford(f core.Faction, cost int) bool {
	return f.IsCombatant() && l.balances[f] >= cost
}

func (l *Ledger) String() string {
	return fmt.Sprintf("player=%d computer=%d", l.balances[core.Player], l.balances[core.Computer])
}
