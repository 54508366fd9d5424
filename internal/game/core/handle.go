package core

import "fmt"

// Handle references an entity slot in the entity store. Generations start
// at 1, so the zero Handle never refers to a live entity.
type Handle struct {
	Index uint32
	Gen   uint32
}

// NilHandle is the empty reference.
var NilHandle = Handle{}

func (h Handle) IsNil() bool { return h.Gen == 0 }

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d#%d", h.Index, h.Gen)
}
