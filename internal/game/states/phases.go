package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - terrain and base generation
	PhaseInitializing GamePhase = iota

	// PhaseRunning - Active gameplay
	PhaseRunning

	// PhaseEnded - one faction holds every base
	PhaseEnded

	// PhaseReset - Reset the current game without full teardown
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveCommands returns true if spawn and move commands are accepted in this phase
func (p GamePhase) CanReceiveCommands() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Initializing":
		return PhaseInitializing
	case "Running":
		return PhaseRunning
	case "Ended":
		return PhaseEnded
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing // Default to initializing for unknown phases
	}
}
