package entity

import "github.com/mitchelldurbincs/GridSkirmish/internal/game/core"

// Store owns every live entity of a simulation.
type Store struct {
	Units   Arena[Unit]
	Bases   Arena[Base]
	Bullets Arena[Bullet]
}

func NewStore() *Store {
	return &Store{}
}

// AddUnit inserts u and stamps its handle onto it.
func (s *Store) AddUnit(u *Unit) core.Handle {
	u.ID = s.Units.Insert(u)
	return u.ID
}

func (s *Store) AddBase(b *Base) core.Handle {
	b.ID = s.Bases.Insert(b)
	return b.ID
}

func (s *Store) AddBullet(b *Bullet) core.Handle {
	b.ID = s.Bullets.Insert(b)
	return b.ID
}

// Unit returns the unit behind h when it exists and is alive.
func (s *Store) Unit(h core.Handle) *Unit {
	u := s.Units.Get(h)
	if u == nil || !u.IsAlive() {
		return nil
	}
	return u
}

// OwnedBases counts the bases held by faction.
func (s *Store) OwnedBases(f core.Faction) int {
	n := 0
	s.Bases.Each(func(_ core.Handle, b *Base) {
		if b.Faction == f {
			n++
		}
	})
	return n
}

// InSpawnRange reports whether pos lies within the spawn radius of any base
// owned by f.
func (s *Store) InSpawnRange(pos core.Vec2, f core.Faction) bool {
	in := false
	s.Bases.Each(func(_ core.Handle, b *Base) {
		if b.Faction == f && pos.Dist(b.Position) <= b.SpawnRadius {
			in = true
		}
	})
	return in
}

// Clear drops every entity.
func (s *Store) Clear() {
	s.Units.Clear()
	s.Bases.Clear()
	s.Bullets.Clear()
}
