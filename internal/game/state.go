// Package game provides the main game loop and state management.
package game

import (
	"context"

	"github.com/sirupsen/logrus"
)

// State represents the current game state.
type State int

const (
	// StateOverworld is the default mode where the player walks the map.
	StateOverworld State = iota
	// StateCombat is the turn-based fight screen.
	StateCombat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateOverworld:
		return "overworld"
	case StateCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Hook runs when a state is entered or exited.
type Hook func(ctx context.Context)

// StateMachine owns the current game state. Transitions are applied only by the fade system.
type StateMachine struct {
	current State
	onEnter map[State][]Hook
	onExit  map[State][]Hook
	log     *logrus.Entry
}

// NewStateMachine starts in initial without running any hooks.
func NewStateMachine(initial State, log *logrus.Entry) *StateMachine {
	return &StateMachine{
		current: initial,
		onEnter: make(map[State][]Hook),
		onExit:  make(map[State][]Hook),
		log:     log,
	}
}

// Current returns the active state.
func (m *StateMachine) Current() State {
	return m.current
}

// OnEnter registers a hook run after s becomes current.
func (m *StateMachine) OnEnter(s State, h Hook) {
	m.onEnter[s] = append(m.onEnter[s], h)
}

// OnExit registers a hook run before s stops being current.
func (m *StateMachine) OnExit(s State, h Hook) {
	m.onExit[s] = append(m.onExit[s], h)
}

// apply runs the exit hooks of the current state, switches, then runs the enter hooks of next.
// Applying the current state is a no-op.
func (m *StateMachine) apply(ctx context.Context, next State) {
	if next == m.current {
		return
	}
	prev := m.current
	for _, h := range m.onExit[prev] {
		h(ctx)
	}
	m.current = next
	m.log.WithFields(logrus.Fields{"from": prev, "to": next}).Infof("changing to %s", next)
	for _, h := range m.onEnter[next] {
		h(ctx)
	}
}
