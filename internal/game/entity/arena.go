package entity

import "github.com/mitchelldurbincs/GridSkirmish/internal/game/core"

type slot[T any] struct {
	gen  uint32
	item *T
}

// Arena stores entities in reusable slots addressed by generational
// handles. A handle goes stale as soon as its entity is removed, so a
// lookup through a stale handle misses instead of hitting a recycled slot.
// Pointers returned by Get stay valid until the entity is removed.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores item and returns its handle.
func (a *Arena[T]) Insert(item *T) core.Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.item = item
		return core.Handle{Index: idx, Gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{gen: 1, item: item})
	return core.Handle{Index: uint32(len(a.slots) - 1), Gen: 1}
}

// Get resolves h, returning nil for nil or stale handles.
func (a *Arena[T]) Get(h core.Handle) *T {
	if h.IsNil() || int(h.Index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Index]
	if s.gen != h.Gen || s.item == nil {
		return nil
	}
	return s.item
}

// Contains reports whether h refers to a live entity.
func (a *Arena[T]) Contains(h core.Handle) bool {
	return a.Get(h) != nil
}

// Remove frees h's slot. Removing a stale handle is a no-op.
func (a *Arena[T]) Remove(h core.Handle) bool {
	if a.Get(h) == nil {
		return false
	}
	a.slots[h.Index].item = nil
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len is the number of live entities.
func (a *Arena[T]) Len() int { return a.live }

// Each visits live entities in slot order. fn may remove the entity it is
// visiting; entities inserted during the walk may or may not be visited.
func (a *Arena[T]) Each(fn func(core.Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.item == nil {
			continue
		}
		fn(core.Handle{Index: uint32(i), Gen: s.gen}, s.item)
	}
}

// Handles returns a snapshot of the live handles in slot order.
func (a *Arena[T]) Handles() []core.Handle {
	out := make([]core.Handle, 0, a.live)
	a.Each(func(h core.Handle, _ *T) { out = append(out, h) })
	return out
}

// Clear drops every entity. Slot generations are kept so handles issued
// before the clear never resolve again.
func (a *Arena[T]) Clear() {
	a.free = a.free[:0]
	for i := range a.slots {
		a.slots[i].item = nil
		a.free = append(a.free, uint32(i))
	}
	a.live = 0
}
