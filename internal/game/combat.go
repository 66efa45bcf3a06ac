package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphquest/internal/combat"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/entity"
	"github.com/samdwyer/glyphquest/internal/gamedata"
	"github.com/samdwyer/glyphquest/internal/input"
)

// RandomEnemy as the encounter enemy picks a weighted random definition per fight.
const RandomEnemy = "random"

// CombatPhase represents the current phase of combat.
type CombatPhase int

const (
	// PhasePlayerTurn - waiting for the player to attack
	PhasePlayerTurn CombatPhase = iota
	// PhaseEnemyTurn - the enemy strikes back
	PhaseEnemyTurn
	// PhaseVictory - the enemy is defeated
	PhaseVictory
	// PhaseDefeat - the player is defeated
	PhaseDefeat
)

// String returns a human-readable phase name.
func (p CombatPhase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// CombatState holds all state for an active combat encounter.
type CombatState struct {
	Phase       CombatPhase
	TurnCount   int    // attacks made by the player
	LastMessage string // message to display from the last action
}

// NewCombatState creates a new combat state for an encounter.
func NewCombatState() *CombatState {
	return &CombatState{
		Phase:       PhasePlayerTurn,
		LastMessage: "Combat begins!",
	}
}

// CombatState returns the state of the current or most recent fight.
func (g *Game) CombatState() *CombatState {
	return g.combat
}

// enemyDef picks the definition for the next fight.
func (g *Game) enemyDef() *gamedata.EnemyDef {
	if g.cfg.Encounter.Enemy == RandomEnemy {
		return g.enemies.SpawnRandom(g.rng)
	}
	return g.enemies.GetByID(g.cfg.Encounter.Enemy)
}

// startCombat spawns the enemy and resets the combat phase.
func (g *Game) startCombat(ctx context.Context) {
	def := g.enemyDef()
	enemy := entity.SpawnEnemy(g.world, g.spawner, def)
	g.combat = NewCombatState()
	g.input.Clear()

	_, span := g.tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy", def.ID),
		attribute.Int("enemy.health", def.HP),
	)
	span.End()

	g.log.WithFields(logrus.Fields{"enemy": def.ID, "entity": enemy}).Info("combat started")
}

// endCombat despawns every enemy and drops unresolved fight events.
func (g *Game) endCombat(ctx context.Context) {
	enemies := ecs.GetStore[entity.Enemy](g.world)
	count := enemies.Count()
	for _, e := range enemies.Entities() {
		g.world.DespawnRecursive(e)
	}
	g.fights.Clear()
	g.input.Clear()

	_, span := g.tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", g.combat.Phase.String()),
		attribute.Int("turns_taken", g.combat.TurnCount),
		attribute.Int("enemies_removed", count),
	)
	span.End()
}

// forceExitCombat leaves combat regardless of health when debug controls are enabled.
func (g *Game) forceExitCombat(ctx context.Context) {
	if !g.cfg.Debug.Enabled || !g.input.JustPressed(input.ActionForceExit) {
		return
	}
	g.log.Debug("forcing exit from combat")
	g.RequestTransition(ctx, StateOverworld)
}

// firstEnemy returns the first living enemy.
func (g *Game) firstEnemy() (ecs.Entity, bool) {
	stats := ecs.GetStore[combat.Stats](g.world)
	for _, e := range ecs.GetStore[entity.Enemy](g.world).Entities() {
		if s, ok := stats.Get(e); ok && s.IsAlive() {
			return e, true
		}
	}
	return 0, false
}

// combatInput turns an attack press on the player's turn into a fight event.
func (g *Game) combatInput() {
	if g.combat.Phase != PhasePlayerTurn || !g.input.JustPressed(input.ActionAttack) {
		return
	}
	target, ok := g.firstEnemy()
	if !ok {
		return
	}

	player, _ := ecs.GetStore[entity.Player](g.world).Single()
	attack := ecs.GetStore[combat.Stats](g.world).MustGet(player).Attack
	g.fights.Push(combat.FightEvent{Target: target, Amount: attack})
	g.combat.TurnCount++
	g.combat.Phase = PhaseEnemyTurn
}

// resolveFights applies every queued fight event in order.
// A target without combat stats is a programming error and panics.
func (g *Game) resolveFights(ctx context.Context) {
	events := g.fights.Drain()
	if len(events) == 0 {
		return
	}

	stats := ecs.GetStore[combat.Stats](g.world)
	enemies := ecs.GetStore[entity.Enemy](g.world)
	players := ecs.GetStore[entity.Player](g.world)

	for _, ev := range events {
		target, ok := stats.Get(ev.Target)
		if !ok {
			panic(fmt.Sprintf("game: fight target %d has no combat stats", ev.Target))
		}

		_, span := g.tracer.Start(ctx, "combat.hit")
		res := combat.Resolve(target, ev.Amount)
		span.SetAttributes(
			attribute.Int("amount", ev.Amount),
			attribute.Int("damage", res.Dealt),
			attribute.Int("health", res.Health),
			attribute.Bool("killed", res.Killed),
		)
		span.End()

		entity.ReplaceHealthReadout(g.world, g.spawner, ev.Target, res.Health)

		name := "target"
		if n, ok := g.world.Names.Get(ev.Target); ok {
			name = string(*n)
		}
		g.combat.LastMessage = fmt.Sprintf("%s takes %d damage!", name, res.Dealt)
		g.log.WithFields(logrus.Fields{"target": name, "damage": res.Dealt, "health": res.Health}).Debug("hit resolved")

		if !res.Killed {
			continue
		}
		switch {
		case enemies.Has(ev.Target):
			g.combat.Phase = PhaseVictory
			g.combat.LastMessage = fmt.Sprintf("Victory! %s is defeated!", name)
		case players.Has(ev.Target):
			g.combat.Phase = PhaseDefeat
			g.combat.LastMessage = "You have been defeated!"
			g.playerDefeated = true
		}
		g.log.WithField("outcome", g.combat.Phase).Info("combat decided")
		g.RequestTransition(ctx, StateOverworld)
	}
}

// enemyTurn lets the living enemy strike the player, then hands the turn back.
func (g *Game) enemyTurn() {
	if g.combat.Phase != PhaseEnemyTurn {
		return
	}
	g.combat.Phase = PhasePlayerTurn

	enemy, ok := g.firstEnemy()
	if !ok {
		return
	}
	player, _ := ecs.GetStore[entity.Player](g.world).Single()
	attack := ecs.GetStore[combat.Stats](g.world).MustGet(enemy).Attack
	g.fights.Push(combat.FightEvent{Target: player, Amount: attack})
}
