package game

import (
	"time"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/movement"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/states"
)

// TileView is the render-facing copy of one cell.
type TileView struct {
	Terrain core.TerrainClass
	Height  float64
}

type BaseView struct {
	ID          core.Handle
	Faction     core.Faction
	Cell        core.Coordinate
	Position    core.Vec2
	SpawnRadius float64
}

type UnitView struct {
	ID             core.Handle
	Faction        core.Faction
	Type           entity.UnitType
	Cell           core.Coordinate
	Position       core.Vec2
	Heading        float64
	TurretHeading  float64
	HealthFraction float64
	Moving         bool
}

type BulletView struct {
	ID       core.Handle
	Faction  core.Faction
	Position core.Vec2
	Heading  float64
	Size     float64
}

// Snapshot is a detached copy of everything a client needs to draw one
// frame. Mutating it has no effect on the engine.
type Snapshot struct {
	GameID   string
	Width    int
	Height   int
	TileSize float64
	Tiles    []TileView // row-major, Width*Height
	Bases    []BaseView
	Units    []UnitView
	Bullets  []BulletView
	Funds    map[core.Faction]int
	Phase    states.GamePhase
	Winner   core.Faction
	SimTime  time.Duration
}

// Tile returns the view of cell (x, y). It panics when out of range.
func (s *Snapshot) Tile(x, y int) TileView { return s.Tiles[y*s.Width+x] }

// Snapshot copies the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		GameID:   e.gameID,
		Width:    e.grid.W,
		Height:   e.grid.H,
		TileSize: e.grid.TileSize,
		Tiles:    make([]TileView, len(e.grid.T)),
		Bases:    make([]BaseView, 0, e.store.Bases.Len()),
		Units:    make([]UnitView, 0, e.store.Units.Len()),
		Bullets:  make([]BulletView, 0, e.store.Bullets.Len()),
		Funds:    make(map[core.Faction]int, len(core.Factions)),
		Phase:    e.Phase(),
		Winner:   e.winner,
		SimTime:  e.now,
	}

	for i := range e.grid.T {
		t := &e.grid.T[i]
		s.Tiles[i] = TileView{Terrain: t.Terrain, Height: t.Height}
	}
	e.store.Bases.Each(func(h core.Handle, b *entity.Base) {
		s.Bases = append(s.Bases, BaseView{
			ID:          h,
			Faction:     b.Faction,
			Cell:        b.Cell,
			Position:    b.Position,
			SpawnRadius: b.SpawnRadius,
		})
	})
	e.store.Units.Each(func(h core.Handle, u *entity.Unit) {
		if !u.IsAlive() {
			return
		}
		s.Units = append(s.Units, UnitView{
			ID:             h,
			Faction:        u.Faction,
			Type:           u.Type,
			Cell:           u.Cell,
			Position:       u.Position,
			Heading:        u.Heading,
			TurretHeading:  u.TurretHeading,
			HealthFraction: u.HealthFraction(),
			Moving:         u.IsMoving(),
		})
	})
	e.store.Bullets.Each(func(h core.Handle, b *entity.Bullet) {
		s.Bullets = append(s.Bullets, BulletView{
			ID:       h,
			Faction:  b.Faction,
			Position: b.Position,
			Heading:  b.Heading,
			Size:     b.Stats.Size,
		})
	})
	for _, f := range core.Factions {
		s.Funds[f] = e.ledger.Balance(f)
	}
	return s
}

// SelectableUnit returns the live unit occupying coord.
func (e *Engine) SelectableUnit(coord core.Coordinate) (core.Handle, bool) {
	t := e.grid.At(coord)
	if t == nil || !t.IsOccupied() {
		return core.NilHandle, false
	}
	if e.store.Unit(t.Occupant) == nil {
		return core.NilHandle, false
	}
	return t.Occupant, true
}

// PreviewSegment is one line of a drawn path. Marker asks for a dot at
// From; the first segment starts at the unit itself and has none.
type PreviewSegment struct {
	From   core.Vec2
	To     core.Vec2
	Marker bool
}

// SelectionPreview lays out the path unit would follow if path were
// committed now, after corner cutting. It returns nil for an unknown unit
// or a path with no steps.
func (e *Engine) SelectionPreview(unit core.Handle, path []core.Coordinate) []PreviewSegment {
	u := e.store.Unit(unit)
	if u == nil || len(path) < 2 {
		return nil
	}
	path = movement.SimplifyPath(path)

	segs := make([]PreviewSegment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		to := e.grid.At(path[i])
		if to == nil {
			break
		}
		seg := PreviewSegment{To: to.Center}
		if i == 1 {
			seg.From = u.Position
		} else {
			seg.From = e.grid.At(path[i-1]).Center
			seg.Marker = true
		}
		segs = append(segs, seg)
	}
	return segs
}
