package movement

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

const (
	// handoffProgress is the segment fraction at which a unit takes over
	// its destination cell.
	handoffProgress = 0.5
	// headingSmoothing is the per-step fraction the body turns toward the
	// segment heading.
	headingSmoothing = 0.1
)

// Status describes what Advance did to a unit.
type Status int

const (
	StatusIdle Status = iota
	StatusMoving
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusMoving:
		return "moving"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result reports the observable effects of one Advance call.
type Result struct {
	Status    Status
	HandedOff bool // the unit changed cell this step
	Completed bool // the front segment finished and was popped
	// Captured is set when the handoff took a base from another faction.
	Captured      *entity.Base
	PreviousOwner core.Faction
	// Blocker is the cell that refused activation when Status is aborted.
	Blocker core.Coordinate
}

// Engine drives waypoint movement over a grid.
type Engine struct {
	grid   *core.Grid
	store  *entity.Store
	logger zerolog.Logger
}

func NewEngine(grid *core.Grid, store *entity.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		grid:   grid,
		store:  store,
		logger: logger.With().Str("component", "MovementEngine").Logger(),
	}
}

// Command replaces u's queue with one waypoint per consecutive pair of
// cells in path. Any reservation held by the old queue is released.
func (e *Engine) Command(u *entity.Unit, path []core.Coordinate) {
	e.Release(u)
	u.Waypoints = u.Waypoints[:0]
	for i := 0; i+1 < len(path); i++ {
		u.Waypoints = append(u.Waypoints, &entity.Waypoint{From: path[i], To: path[i+1]})
	}
}

// Release drops the destination reservation of u's front segment if it was
// activated but has not handed off yet.
func (e *Engine) Release(u *entity.Unit) {
	wp := u.Front()
	if wp == nil || !wp.Activated || wp.HandedOff {
		return
	}
	if t := e.grid.At(wp.To); t != nil && t.Reserved == u.ID {
		t.Reserved = core.NilHandle
	}
}

// Stop clears u's queue, releasing its reservation.
func (e *Engine) Stop(u *entity.Unit) {
	e.Release(u)
	u.Waypoints = nil
}

// Advance progresses u's front waypoint to simulated time now.
func (e *Engine) Advance(u *entity.Unit, now time.Duration) Result {
	wp := u.Front()
	if wp == nil {
		return Result{Status: StatusIdle}
	}

	if !wp.Activated && !e.activate(u, wp, now) {
		u.Waypoints = nil
		e.logger.Debug().
			Str("unit", u.ID.String()).
			Str("blocked", wp.To.String()).
			Msg("Move aborted, destination taken")
		return Result{Status: StatusAborted, Blocker: wp.To}
	}

	res := Result{Status: StatusMoving}
	to := e.grid.At(wp.To)

	progress := 1.0
	if wp.Duration > 0 {
		progress = float64(now-wp.StartTime) / float64(wp.Duration)
		progress = min(max(progress, 0), 1)
	}
	u.Position = wp.StartPosition.Lerp(to.Center, progress)
	u.Heading = core.LerpAngle(u.Heading, wp.Heading, headingSmoothing)

	if progress >= handoffProgress && !wp.HandedOff {
		e.handoff(u, wp, to, &res)
	}

	if now > wp.End() {
		u.Waypoints = u.Waypoints[1:]
		res.Completed = true
	}
	return res
}

func (e *Engine) activate(u *entity.Unit, wp *entity.Waypoint, now time.Duration) bool {
	to := e.grid.At(wp.To)
	from := e.grid.At(wp.From)
	if to == nil || from == nil {
		return false
	}
	if e.blocks(to.Occupant, u) || e.blocks(to.Reserved, u) {
		return false
	}

	wp.Activated = true
	wp.StartTime = now
	wp.StartPosition = u.Position
	wp.Heading = u.Position.HeadingTo(to.Center)
	wp.Distance = u.Position.Dist(to.Center)
	wp.Duration = time.Duration(wp.Distance / SegmentSpeed(u, from, to) * float64(time.Second))
	to.Reserved = u.ID
	return true
}

// blocks reports whether h is a live unit other than u.
func (e *Engine) blocks(h core.Handle, u *entity.Unit) bool {
	if h.IsNil() || h == u.ID {
		return false
	}
	return e.store.Unit(h) != nil
}

func (e *Engine) handoff(u *entity.Unit, wp *entity.Waypoint, to *core.Tile, res *Result) {
	wp.HandedOff = true
	if from := e.grid.At(u.Cell); from != nil && from.Occupant == u.ID {
		from.Occupant = core.NilHandle
	}
	to.Occupant = u.ID
	if to.Reserved == u.ID {
		to.Reserved = core.NilHandle
	}
	u.Cell = wp.To
	res.HandedOff = true

	if base := e.store.Bases.Get(to.Base); base != nil && base.Faction != u.Faction {
		prev := base.Faction
		base.Capture(u.Faction)
		res.Captured = base
		res.PreviousOwner = prev
	}
}
