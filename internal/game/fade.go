package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/timer"
)

// ScreenFade darkens the screen towards the fade colour and back, switching to Next at the midpoint.
type ScreenFade struct {
	Alpha float64
	Sent  bool // Next has been applied
	Next  State
	Timer timer.Timer
}

// RequestTransition starts a fade that switches to next halfway through.
// A request made while another fade is running is dropped.
func (g *Game) RequestTransition(ctx context.Context, next State) bool {
	fades := ecs.GetStore[ScreenFade](g.world)
	if fades.Count() > 0 {
		g.log.WithField("next", next).Debug("transition dropped: fade already running")
		return false
	}

	_, span := g.tracer.Start(ctx, "fade.request")
	span.SetAttributes(
		attribute.String("from", g.states.Current().String()),
		attribute.String("to", next.String()),
	)
	defer span.End()

	e := g.world.Spawn()
	g.world.Names.Set(e, ecs.Name("ScreenFade"))
	fades.Set(e, ScreenFade{
		Next:  next,
		Timer: timer.New(g.cfg.Fade.Duration, timer.Once),
	})
	g.log.WithField("next", next).Debug("transition requested")
	return true
}

// FadeAlpha returns the overlay opacity of the running fade, or 0 when none is running.
func (g *Game) FadeAlpha() float64 {
	fades := ecs.GetStore[ScreenFade](g.world)
	alpha := 0.0
	for _, e := range fades.Entities() {
		alpha = max(alpha, fades.MustGet(e).Alpha)
	}
	return alpha
}

// updateFades advances running fades, applies the pending state once past the midpoint
// and removes fades whose timer has run out.
func (g *Game) updateFades(ctx context.Context, dt time.Duration) {
	fades := ecs.GetStore[ScreenFade](g.world)
	for _, e := range fades.Entities() {
		f := fades.MustGet(e)
		f.Timer.Tick(dt)

		frac := f.Timer.Fraction()
		if frac < 0.5 {
			f.Alpha = 2 * frac
		} else {
			f.Alpha = 2 * (1 - frac)
		}

		if frac >= 0.5 && !f.Sent {
			f.Sent = true
			g.states.apply(ctx, f.Next)
		}

		if f.Timer.JustFinished() {
			g.world.DespawnRecursive(e)
		}
	}
}
