package movement

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/testutil"
)

const ms = time.Millisecond

type fixture struct {
	grid   *core.Grid
	store  *entity.Store
	engine *Engine
}

// newFixture builds a soil grid whose cell centres are 55px apart, so a
// straight one-cell move by a stock tank takes exactly one second.
func newFixture(w, h int) *fixture {
	grid := core.NewGrid(w, h, 55)
	for i := range grid.T {
		grid.T[i].Terrain = core.Soil
	}
	store := entity.NewStore()
	return &fixture{grid: grid, store: store, engine: NewEngine(grid, store, testutil.NopLogger())}
}

func (f *fixture) place(faction core.Faction, c core.Coordinate) *entity.Unit {
	u := entity.NewUnit(faction, entity.Tank, entity.DefaultTankStats(), c, f.grid.At(c).Center, 0)
	f.store.AddUnit(u)
	f.grid.At(c).Occupant = u.ID
	return u
}

func TestTerrainMultiplier(t *testing.T) {
	assert.Equal(t, 0.2, TerrainMultiplier(entity.Tank, core.Forest))
	assert.Equal(t, 1.0, TerrainMultiplier(entity.Tank, core.Soil))
	assert.Equal(t, 0.4, TerrainMultiplier(entity.Tank, core.Sand))
	assert.Equal(t, 0.2, TerrainMultiplier(entity.Tank, core.Water))
}

func TestSegmentSpeed_UsesBetterTerrain(t *testing.T) {
	f := newFixture(3, 1)
	f.grid.Tile(0, 0).Terrain = core.Water
	f.grid.Tile(1, 0).Terrain = core.Sand
	u := f.place(core.Player, core.Coordinate{})

	assert.InDelta(t, 55*0.4, SegmentSpeed(u, f.grid.Tile(0, 0), f.grid.Tile(1, 0)), 1e-9)
	assert.InDelta(t, 55*1.0, SegmentSpeed(u, f.grid.Tile(1, 0), f.grid.Tile(2, 0)), 1e-9)
}

func TestAdvance_SegmentTimingAndHandoff(t *testing.T) {
	f := newFixture(3, 1)
	u := f.place(core.Player, core.Coordinate{X: 0})
	f.engine.Command(u, testutil.Path(0, 0, 1, 0))

	start := 100 * ms
	res := f.engine.Advance(u, start)
	require.Equal(t, StatusMoving, res.Status)
	wp := u.Front()
	require.NotNil(t, wp)
	assert.True(t, wp.Activated)
	assert.Equal(t, time.Second, wp.Duration)
	assert.Equal(t, 55.0, wp.Distance)
	assert.Equal(t, u.ID, f.grid.Tile(1, 0).Reserved)

	res = f.engine.Advance(u, start+499*ms)
	assert.False(t, res.HandedOff)
	assert.Equal(t, core.Coordinate{X: 0}, u.Cell, "no handoff below half progress")
	assert.Equal(t, u.ID, f.grid.Tile(0, 0).Occupant)

	res = f.engine.Advance(u, start+500*ms)
	assert.True(t, res.HandedOff, "handoff at exactly half progress")
	assert.Equal(t, core.Coordinate{X: 1}, u.Cell)
	assert.True(t, f.grid.Tile(0, 0).Occupant.IsNil())
	assert.Equal(t, u.ID, f.grid.Tile(1, 0).Occupant)
	assert.True(t, f.grid.Tile(1, 0).Reserved.IsNil())
	assert.InDelta(t, f.grid.Tile(0, 0).Center.X+27.5, u.Position.X, 1e-9)

	res = f.engine.Advance(u, start+time.Second)
	assert.False(t, res.Completed, "segment completes only once its end is passed")
	assert.Equal(t, f.grid.Tile(1, 0).Center, u.Position)

	res = f.engine.Advance(u, start+time.Second+ms)
	assert.True(t, res.Completed)
	assert.False(t, res.HandedOff, "handoff happens once")
	assert.Empty(t, u.Waypoints)

	assert.Equal(t, StatusIdle, f.engine.Advance(u, start+2*time.Second).Status)
}

func TestAdvance_CapturesBaseOnHandoff(t *testing.T) {
	f := newFixture(2, 1)
	base := entity.NewBase(core.Neutral, core.Coordinate{X: 1}, f.grid.Tile(1, 0).Center, entity.DefaultSpawnRadius)
	f.grid.Tile(1, 0).Base = f.store.AddBase(base)

	u := f.place(core.Computer, core.Coordinate{})
	f.engine.Command(u, testutil.Path(0, 0, 1, 0))

	f.engine.Advance(u, 0)
	res := f.engine.Advance(u, 400*ms)
	assert.Nil(t, res.Captured)
	assert.Equal(t, core.Neutral, base.Faction)

	res = f.engine.Advance(u, 600*ms)
	require.NotNil(t, res.Captured)
	assert.Equal(t, core.Neutral, res.PreviousOwner)
	assert.Equal(t, core.Computer, base.Faction)
}

func TestAdvance_FriendlyBaseNotRecaptured(t *testing.T) {
	f := newFixture(2, 1)
	base := entity.NewBase(core.Player, core.Coordinate{X: 1}, f.grid.Tile(1, 0).Center, entity.DefaultSpawnRadius)
	f.grid.Tile(1, 0).Base = f.store.AddBase(base)

	u := f.place(core.Player, core.Coordinate{})
	f.engine.Command(u, testutil.Path(0, 0, 1, 0))
	f.engine.Advance(u, 0)
	res := f.engine.Advance(u, 600*ms)

	assert.True(t, res.HandedOff)
	assert.Nil(t, res.Captured)
}

func TestAdvance_AbortsOnOccupiedDestination(t *testing.T) {
	f := newFixture(4, 1)
	mover := f.place(core.Player, core.Coordinate{X: 0})
	f.place(core.Computer, core.Coordinate{X: 2})

	f.engine.Command(mover, testutil.Path(0, 0, 1, 0, 2, 0, 3, 0))
	require.Len(t, mover.Waypoints, 3)

	f.engine.Advance(mover, 0)
	f.engine.Advance(mover, time.Second+ms)
	require.Len(t, mover.Waypoints, 2)

	res := f.engine.Advance(mover, time.Second+2*ms)
	assert.Equal(t, StatusAborted, res.Status)
	assert.Equal(t, core.Coordinate{X: 2}, res.Blocker)
	assert.Empty(t, mover.Waypoints, "the whole remaining path is dropped")
	assert.Equal(t, core.Coordinate{X: 1}, mover.Cell)
}

func TestAdvance_ReservationBlocksSecondMover(t *testing.T) {
	f := newFixture(3, 1)
	a := f.place(core.Player, core.Coordinate{X: 0})
	b := f.place(core.Player, core.Coordinate{X: 2})

	f.engine.Command(a, testutil.Path(0, 0, 1, 0))
	f.engine.Command(b, testutil.Path(2, 0, 1, 0))

	assert.Equal(t, StatusMoving, f.engine.Advance(a, 0).Status)
	assert.Equal(t, StatusAborted, f.engine.Advance(b, 0).Status)
}

func TestCommand_ReleasesReservation(t *testing.T) {
	f := newFixture(3, 3)
	u := f.place(core.Player, core.Coordinate{X: 1, Y: 1})

	f.engine.Command(u, testutil.Path(1, 1, 2, 1))
	f.engine.Advance(u, 0)
	require.Equal(t, u.ID, f.grid.Tile(2, 1).Reserved)

	f.engine.Command(u, testutil.Path(1, 1, 1, 2))
	assert.True(t, f.grid.Tile(2, 1).Reserved.IsNil())
	require.Len(t, u.Waypoints, 1)
	assert.False(t, u.Front().Activated)

	f.engine.Stop(u)
	assert.Empty(t, u.Waypoints)
}

func TestAdvance_DeadOccupantDoesNotBlock(t *testing.T) {
	f := newFixture(2, 1)
	u := f.place(core.Player, core.Coordinate{})
	corpse := f.place(core.Computer, core.Coordinate{X: 1})
	corpse.TakeDamage(1000)

	f.engine.Command(u, testutil.Path(0, 0, 1, 0))
	assert.Equal(t, StatusMoving, f.engine.Advance(u, 0).Status)
}

func TestAdvance_HeadingTurnsGradually(t *testing.T) {
	f := newFixture(1, 2)
	u := f.place(core.Player, core.Coordinate{})
	u.Heading = 0

	f.engine.Command(u, testutil.Path(0, 0, 0, 1))
	f.engine.Advance(u, 0)

	// Segment points straight down (pi/2); the body moves a tenth of the way.
	assert.InDelta(t, 0.1*(math.Pi/2), u.Heading, 1e-9)
}
