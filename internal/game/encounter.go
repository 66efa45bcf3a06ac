package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/entity"
	"github.com/samdwyer/glyphquest/internal/timer"
	"github.com/samdwyer/glyphquest/internal/world"
)

// EncounterTracker counts time spent walking through encounter zones.
type EncounterTracker struct {
	Timer timer.Timer
}

// NewEncounterTracker creates a tracker that fires every cooldown of walking in encounter zones.
func NewEncounterTracker(cooldown time.Duration) EncounterTracker {
	return EncounterTracker{Timer: timer.New(cooldown, timer.Repeating)}
}

// checkEncounters advances the tracker while the player is moving over an encounter zone.
// Each completed cycle asks for a fade into combat.
func (g *Game) checkEncounters(ctx context.Context, dt time.Duration) {
	e, p := ecs.GetStore[entity.Player](g.world).Single()
	if !p.JustMoved {
		return
	}
	zones := ecs.GetStore[world.EncounterZone](g.world).Entities()
	if !g.overlapsAny(zones, g.world.GlobalTranslation(e)) {
		return
	}

	tracker := ecs.GetStore[EncounterTracker](g.world).MustGet(e)
	tracker.Timer.Tick(dt)

	for range tracker.Timer.TimesFinishedThisTick() {
		_, span := g.tracer.Start(ctx, "encounter.triggered")
		span.SetAttributes(attribute.String("enemy", g.cfg.Encounter.Enemy))
		span.End()
		g.log.Info("encounter triggered")
		g.RequestTransition(ctx, StateCombat)
	}
}
