package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/testutil"
)

func TestCheckGameOver(t *testing.T) {
	tests := []struct {
		name       string
		owners     []core.Faction
		wantOver   bool
		wantWinner core.Faction
	}{
		{"no bases", nil, false, core.Neutral},
		{"all neutral", []core.Faction{core.Neutral, core.Neutral}, false, core.Neutral},
		{"mixed", []core.Faction{core.Player, core.Computer, core.Neutral}, false, core.Neutral},
		{"player holds all but one neutral", []core.Faction{core.Player, core.Player, core.Neutral}, false, core.Neutral},
		{"player holds all", []core.Faction{core.Player, core.Player, core.Player}, true, core.Player},
		{"computer holds the only base", []core.Faction{core.Computer}, true, core.Computer},
	}

	wc := NewWinConditionChecker(testutil.NopLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			over, winner := wc.CheckGameOver(tt.owners)
			assert.Equal(t, tt.wantOver, over)
			assert.Equal(t, tt.wantWinner, winner)
		})
	}
}
