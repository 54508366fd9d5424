package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/testutil"
)

func spawnAt(s *entity.Store, f core.Faction, x, y float64) *entity.Unit {
	u := entity.NewUnit(f, entity.Tank, entity.DefaultTankStats(), core.Coordinate{}, core.Vec2{X: x, Y: y}, 0)
	s.AddUnit(u)
	return u
}

func moving(u *entity.Unit) {
	u.Waypoints = []*entity.Waypoint{{From: core.Coordinate{}, To: core.Coordinate{X: 1}}}
}

func TestFindNearestEnemy_RangeShrinksWhileMoving(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		moving    bool
		wantFound bool
	}{
		{"stationary at full range", 200, false, true},
		{"stationary beyond range", 200.5, false, false},
		{"moving at 180 is out", 180, true, false},
		{"moving at 160 is in", 160, true, true},
		{"stationary at 180 is in", 180, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entity.NewStore()
			u := spawnAt(s, core.Player, 0, 0)
			spawnAt(s, core.Computer, tt.distance, 0)
			if tt.moving {
				moving(u)
			}

			_, found := FindNearestEnemy(s, u, DefaultMovingRangeFactor)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestFindNearestEnemy_PicksClosestAndIgnoresFriends(t *testing.T) {
	s := entity.NewStore()
	u := spawnAt(s, core.Player, 0, 0)
	spawnAt(s, core.Player, 10, 0)
	far := spawnAt(s, core.Computer, 150, 0)
	near := spawnAt(s, core.Computer, 0, 90)
	tie := spawnAt(s, core.Computer, 90, 0)

	got, ok := FindNearestEnemy(s, u, DefaultMovingRangeFactor)
	require.True(t, ok)
	assert.Same(t, near, got, "first encountered wins a tie")
	assert.NotSame(t, far, got)
	assert.NotSame(t, tie, got)

	near.TakeDamage(1000)
	got, ok = FindNearestEnemy(s, u, DefaultMovingRangeFactor)
	require.True(t, ok)
	assert.Same(t, tie, got, "dead units are never targeted")
}

func TestTryFire(t *testing.T) {
	s := entity.NewStore()
	e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
	u := spawnAt(s, core.Player, 0, 0)
	enemy := spawnAt(s, core.Computer, 0, 100)

	assert.Nil(t, e.TryFire(u, 800*time.Millisecond), "fresh unit is still reloading")

	b := e.TryFire(u, 801*time.Millisecond)
	require.NotNil(t, b)
	assert.Equal(t, u.ID, b.Owner)
	assert.Equal(t, enemy.ID, b.Target)
	assert.Equal(t, core.Player, b.Faction)
	assert.Equal(t, 801*time.Millisecond, u.LastFired)
	assert.Equal(t, b.Heading, u.TurretHeading)
	assert.Equal(t, 1, s.Bullets.Len())

	assert.Nil(t, e.TryFire(u, 1601*time.Millisecond))
	assert.NotNil(t, e.TryFire(u, 1602*time.Millisecond))
}

func TestTryFire_TurretRelaxesWithoutTarget(t *testing.T) {
	s := entity.NewStore()
	e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
	u := spawnAt(s, core.Player, 0, 0)
	u.Heading = 1.0
	u.TurretHeading = 0

	assert.Nil(t, e.TryFire(u, 5*time.Second))
	assert.InDelta(t, 0.15, u.TurretHeading, 1e-12)
	assert.Equal(t, 0, s.Bullets.Len())
}

func fireAt(t *testing.T, s *entity.Store, e *Engine, target *entity.Unit) *entity.Bullet {
	t.Helper()
	shooter := spawnAt(s, core.Player, target.Position.X-100, target.Position.Y)
	b := e.TryFire(shooter, time.Second)
	require.NotNil(t, b)
	return b
}

func TestAdvanceBullet_Damage(t *testing.T) {
	tests := []struct {
		name         string
		targetMoving bool
		wantDamage   float64
	}{
		{"stationary target takes reduced damage", false, 14},
		{"moving target takes full damage", true, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entity.NewStore()
			e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
			target := spawnAt(s, core.Computer, 500, 500)
			if tt.targetMoving {
				moving(target)
			}
			b := fireAt(t, s, e, target)

			out := e.AdvanceBullet(b, 100*time.Millisecond)
			assert.Equal(t, InFlight, out.Resolution, "40px step from 100px away")
			assert.InDelta(t, 60, b.Position.Dist(target.Position), 1e-9)

			for i := 0; i < 10 && out.Resolution == InFlight; i++ {
				out = e.AdvanceBullet(b, 100*time.Millisecond)
			}
			require.Equal(t, Hit, out.Resolution)
			assert.InDelta(t, tt.wantDamage, out.Damage, 1e-9)
			assert.InDelta(t, 200-tt.wantDamage, target.Health, 1e-9)
			assert.False(t, out.Killed)
		})
	}
}

func TestAdvanceBullet_Kill(t *testing.T) {
	s := entity.NewStore()
	e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
	target := spawnAt(s, core.Computer, 200, 200)
	target.Health = 10
	b := fireAt(t, s, e, target)

	out := e.AdvanceBullet(b, time.Second)
	require.Equal(t, Hit, out.Resolution)
	assert.True(t, out.Killed)
	assert.False(t, target.IsAlive())
}

func TestAdvanceBullet_FizzlesOnDeadOrRemovedTarget(t *testing.T) {
	s := entity.NewStore()
	e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
	target := spawnAt(s, core.Computer, 300, 0)
	b := fireAt(t, s, e, target)

	target.TakeDamage(1000)
	out := e.AdvanceBullet(b, 10*time.Millisecond)
	assert.Equal(t, Fizzled, out.Resolution)
	assert.Nil(t, out.Target)

	s.Units.Remove(target.ID)
	out = e.AdvanceBullet(b, 10*time.Millisecond)
	assert.Equal(t, Fizzled, out.Resolution)
}

func TestAdvanceBullet_HomesOnMovingTarget(t *testing.T) {
	s := entity.NewStore()
	e := NewEngine(DefaultConfig(), s, testutil.NopLogger())
	target := spawnAt(s, core.Computer, 100, 0)
	b := fireAt(t, s, e, target)

	target.Position = core.Vec2{X: 0, Y: 100}
	e.AdvanceBullet(b, 10*time.Millisecond)

	assert.InDelta(t, target.Position.Sub(core.Vec2{}).Heading(), b.Heading, 0.3)
	assert.Greater(t, b.Position.Y, 0.0)
}
