// Package game provides the top-level menu, game sessions and the
// full-screen mode.
package game

// State represents where the menu loop currently is.
type State int

const (
	// StateMenu is the top-level option prompt.
	StateMenu State = iota
	// StatePlaying is an active game session.
	StatePlaying
	// StateExiting is set once the player chose to leave.
	StateExiting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}
