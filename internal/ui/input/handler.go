// Package input turns pointer and key events into grid commands. It holds
// no toolkit state; the client feeds it cursor positions and key presses.
package input

import (
	"slices"

	"github.com/mitchelldurbincs/GridSkirmish/internal/common"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandSpawn
	CommandDebugBase
	CommandReset
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandSpawn:
		return "spawn"
	case CommandDebugBase:
		return "debug_base"
	case CommandReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Command is a request for the engine produced by user input.
type Command struct {
	Kind    CommandKind
	Faction core.Faction
	Cell    core.Coordinate
	Type    entity.UnitType // spawns only
	Unit    core.Handle
	Path    []core.Coordinate
}

// Key is a bound key, independent of the toolkit's key codes.
type Key int

const (
	KeySpawnPlayer Key = iota
	KeySpawnComputer
	KeyBasePlayer
	KeyBaseComputer
	KeyReset
	KeyCancel
)

// Selector reports the unit standing on a cell, if any.
type Selector func(core.Coordinate) (core.Handle, bool)

type Handler struct {
	tileSize     float64
	gridW, gridH int

	hover    core.Coordinate
	selected core.Handle
	dragging bool
	path     []core.Coordinate

	selector Selector
	pending  []Command
}

func NewHandler(tileSize float64, gridW, gridH int) *Handler {
	return &Handler{
		tileSize: tileSize,
		gridW:    gridW,
		gridH:    gridH,
	}
}

// SetSelector installs the lookup used when a press lands on a cell.
func (h *Handler) SetSelector(s Selector) {
	h.selector = s
}

// ScreenToCell maps a pixel to the cell under it, clamped onto the grid.
func (h *Handler) ScreenToCell(x, y int) core.Coordinate {
	cx := int(common.Clamp(float64(x)/h.tileSize, 0, float64(h.gridW-1)))
	cy := int(common.Clamp(float64(y)/h.tileSize, 0, float64(h.gridH-1)))
	return core.NewCoordinate(cx, cy)
}

// MouseMoved updates the hovered cell and extends an active drag. When the
// cursor skips cells between frames the gap is filled one neighbour at a
// time; the drag stops growing at the first cell it already contains.
func (h *Handler) MouseMoved(x, y int) {
	h.hover = h.ScreenToCell(x, y)
	if !h.dragging {
		return
	}
	for c := h.path[len(h.path)-1]; c != h.hover; {
		c = c.StepToward(h.hover)
		if slices.Contains(h.path, c) {
			return
		}
		h.path = append(h.path, c)
	}
}

// Press starts a drag when the cell under the cursor holds a unit.
func (h *Handler) Press(x, y int) {
	h.hover = h.ScreenToCell(x, y)
	h.path = append(h.path[:0], h.hover)
	h.dragging = false
	h.selected = core.NilHandle
	if h.selector == nil {
		return
	}
	if unit, ok := h.selector(h.hover); ok {
		h.selected = unit
		h.dragging = true
	}
}

// Release ends the drag and queues a move when it covered more than one
// cell.
func (h *Handler) Release() {
	if h.dragging && len(h.path) > 1 {
		h.pending = append(h.pending, Command{
			Kind: CommandMove,
			Unit: h.selected,
			Path: slices.Clone(h.path),
		})
	}
	h.Cancel()
}

// Cancel drops any drag in progress.
func (h *Handler) Cancel() {
	h.dragging = false
	h.selected = core.NilHandle
	h.path = h.path[:0]
}

// KeyPressed queues the command bound to k at the hovered cell.
func (h *Handler) KeyPressed(k Key) {
	switch k {
	case KeySpawnPlayer:
		h.pending = append(h.pending, Command{Kind: CommandSpawn, Faction: core.Player, Cell: h.hover, Type: entity.Tank})
	case KeySpawnComputer:
		h.pending = append(h.pending, Command{Kind: CommandSpawn, Faction: core.Computer, Cell: h.hover, Type: entity.Tank})
	case KeyBasePlayer:
		h.pending = append(h.pending, Command{Kind: CommandDebugBase, Faction: core.Player, Cell: h.hover})
	case KeyBaseComputer:
		h.pending = append(h.pending, Command{Kind: CommandDebugBase, Faction: core.Computer, Cell: h.hover})
	case KeyReset:
		h.Cancel()
		h.pending = append(h.pending, Command{Kind: CommandReset})
	case KeyCancel:
		h.Cancel()
	}
}

// Drain returns queued commands in input order and clears the queue.
func (h *Handler) Drain() []Command {
	out := h.pending
	h.pending = nil
	return out
}

func (h *Handler) Hovered() core.Coordinate { return h.hover }

// Drag returns the selected unit and the cells dragged over so far.
func (h *Handler) Drag() (core.Handle, []core.Coordinate, bool) {
	return h.selected, h.path, h.dragging
}
