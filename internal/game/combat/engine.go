package combat

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

// turretRelax is the per-step fraction the turret swings back toward the
// body heading when nothing is in range.
const turretRelax = 0.15

// Config holds combat tuning.
type Config struct {
	Bullet            entity.BulletStats
	MovingRangeFactor float64
}

func DefaultConfig() Config {
	return Config{
		Bullet:            entity.DefaultBulletStats(),
		MovingRangeFactor: DefaultMovingRangeFactor,
	}
}

// Resolution is how a bullet step ended.
type Resolution int

const (
	InFlight Resolution = iota
	Hit
	Fizzled
)

func (r Resolution) String() string {
	switch r {
	case InFlight:
		return "in_flight"
	case Hit:
		return "hit"
	case Fizzled:
		return "fizzled"
	default:
		return "unknown"
	}
}

// Outcome reports one bullet step. Target and Damage are only set on Hit.
type Outcome struct {
	Resolution Resolution
	Target     *entity.Unit
	Damage     float64
	Killed     bool
}

// Engine runs target acquisition, firing and projectile flight.
type Engine struct {
	cfg    Config
	store  *entity.Store
	logger zerolog.Logger
}

func NewEngine(cfg Config, store *entity.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		store:  store,
		logger: logger.With().Str("component", "CombatEngine").Logger(),
	}
}

// TryFire spawns a bullet from u at its nearest enemy when u has reloaded.
// With no enemy in range the turret relaxes toward the body heading. The
// returned bullet is nil when nothing was fired.
func (e *Engine) TryFire(u *entity.Unit, now time.Duration) *entity.Bullet {
	target, ok := FindNearestEnemy(e.store, u, e.cfg.MovingRangeFactor)
	if !ok {
		u.TurretHeading = core.LerpAngle(u.TurretHeading, u.Heading, turretRelax)
		return nil
	}
	if !u.ReadyToFire(now) {
		return nil
	}

	b := &entity.Bullet{
		Owner:    u.ID,
		Target:   target.ID,
		Faction:  u.Faction,
		Position: u.Position,
		Heading:  u.Position.HeadingTo(target.Position),
		Stats:    e.cfg.Bullet,
	}
	e.store.AddBullet(b)
	u.LastFired = now
	u.TurretHeading = b.Heading

	e.logger.Debug().
		Str("shooter", u.ID.String()).
		Str("target", target.ID.String()).
		Msg("Bullet fired")
	return b
}

// AdvanceBullet homes b onto its target and moves it by speed*dt. A hit
// applies damage, reduced against a target with no queued moves. A bullet
// whose target has died or been removed fizzles without effect. The caller
// removes the bullet from the store on any resolution other than InFlight.
func (e *Engine) AdvanceBullet(b *entity.Bullet, dt time.Duration) Outcome {
	target := e.store.Unit(b.Target)
	if target == nil {
		return Outcome{Resolution: Fizzled}
	}

	bearing := target.Position.Sub(b.Position)
	b.Heading = bearing.Heading()
	step := min(b.Stats.Speed*dt.Seconds(), bearing.Len())
	b.Position = b.Position.Add(bearing.Normalize().Scale(step))

	if b.Position.Dist(target.Position) >= b.Stats.Size {
		return Outcome{Resolution: InFlight}
	}

	dmg := b.Stats.Damage
	if !target.IsMoving() {
		dmg *= b.Stats.StationaryFactor
	}
	killed := target.TakeDamage(dmg)
	return Outcome{Resolution: Hit, Target: target, Damage: dmg, Killed: killed}
}
