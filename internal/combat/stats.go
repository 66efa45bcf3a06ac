package combat

// Stats is the health, attack and defense shared by the player and enemies.
// Health stays within [0, MaxHealth].
type Stats struct {
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// NewStats creates stats at full health.
func NewStats(maxHealth, attack, defense int) Stats {
	return Stats{
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Attack:    attack,
		Defense:   defense,
	}
}

// IsAlive returns true if health remains.
func (s *Stats) IsAlive() bool { return s.Health > 0 }

// TakeDamage reduces health, never below zero, and returns the health actually lost.
func (s *Stats) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > s.Health {
		actual = s.Health
	}
	s.Health -= actual
	return actual
}

// Restore returns health to max.
func (s *Stats) Restore() {
	s.Health = s.MaxHealth
}
