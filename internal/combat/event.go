package combat

import "github.com/samdwyer/glyphquest/internal/ecs"

// FightEvent asks the damage step to hit Target for Amount before defense.
type FightEvent struct {
	Target ecs.Entity
	Amount int
}

// Queue carries fight events from the systems that emit them to the damage step.
// Events are delivered in push order and each is delivered once.
type Queue struct {
	events []FightEvent
}

// Push appends an event.
func (q *Queue) Push(ev FightEvent) {
	q.events = append(q.events, ev)
}

// Drain returns all pending events and empties the queue.
func (q *Queue) Drain() []FightEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Clear drops all pending events.
func (q *Queue) Clear() {
	q.events = nil
}
