// Package combat provides damage resolution for turn-based fights.
package combat

import "fmt"

// Result is the outcome of one resolved fight event.
type Result struct {
	Dealt  int  // health removed after defense
	Health int  // target health afterwards
	Killed bool // target went from positive health to zero on this hit
}

// DamageAfterDefense returns max(amount - defense, 0).
func DamageAfterDefense(amount, defense int) int {
	dealt := amount - defense
	if dealt < 0 {
		return 0
	}
	return dealt
}

// Resolve applies one hit to target.
func Resolve(target *Stats, amount int) Result {
	wasAlive := target.IsAlive()
	dealt := target.TakeDamage(DamageAfterDefense(amount, target.Defense))
	return Result{
		Dealt:  dealt,
		Health: target.Health,
		Killed: wasAlive && !target.IsAlive(),
	}
}

// HealthText is the readout shown next to a combatant.
func HealthText(health int) string {
	return fmt.Sprintf("Health: %d", health)
}
