// Package input turns terminal key presses into per-tick pressed and just-pressed queries.
package input

import "time"

// Action is a game control.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionAttack
	ActionForceExit // debug only: leave combat without winning
	ActionInspect   // debug only: dump the world to the log
	ActionQuit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionAttack:
		return "attack"
	case ActionForceExit:
		return "force_exit"
	case ActionInspect:
		return "inspect"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// State tracks which actions are held and which were pressed since the last tick.
//
// Terminals report key presses and auto-repeats but never releases, so an
// action counts as held until holdWindow passes without another press.
type State struct {
	holdWindow time.Duration
	now        time.Time
	lastSeen   map[Action]time.Time
	just       map[Action]bool
}

// NewState creates an input state with the given hold window.
func NewState(holdWindow time.Duration) *State {
	return &State{
		holdWindow: holdWindow,
		lastSeen:   make(map[Action]time.Time),
		just:       make(map[Action]bool),
	}
}

// Press records a press or auto-repeat of a at time at.
func (s *State) Press(a Action, at time.Time) {
	s.lastSeen[a] = at
	s.just[a] = true
}

// BeginTick sets the time that Pressed compares against.
func (s *State) BeginTick(now time.Time) {
	s.now = now
}

// Pressed reports whether a is currently held.
func (s *State) Pressed(a Action) bool {
	if s.just[a] {
		return true
	}
	seen, ok := s.lastSeen[a]
	if !ok {
		return false
	}
	return s.now.Sub(seen) < s.holdWindow
}

// JustPressed reports whether a was pressed since the previous tick ended.
func (s *State) JustPressed(a Action) bool {
	return s.just[a]
}

// EndTick forgets this tick's just-pressed actions.
func (s *State) EndTick() {
	clear(s.just)
}

// Clear forgets every press, so nothing is held or just pressed.
func (s *State) Clear() {
	clear(s.just)
	clear(s.lastSeen)
}
