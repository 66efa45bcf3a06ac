package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/glyphquest/internal/ascii"
	"github.com/samdwyer/glyphquest/internal/combat"
	"github.com/samdwyer/glyphquest/internal/config"
	"github.com/samdwyer/glyphquest/internal/debug"
	"github.com/samdwyer/glyphquest/internal/ecs"
	"github.com/samdwyer/glyphquest/internal/entity"
	"github.com/samdwyer/glyphquest/internal/gamedata"
	"github.com/samdwyer/glyphquest/internal/input"
	"github.com/samdwyer/glyphquest/internal/telemetry"
	"github.com/samdwyer/glyphquest/internal/ui"
	"github.com/samdwyer/glyphquest/internal/world"
)

// Options configures a new game.
type Options struct {
	Config *config.Config
	Grid   *world.Grid    // overworld map, already loaded
	Logger *logrus.Logger // defaults to the standard logger
	// SessionID tags log lines and spans. A random one is generated when empty.
	SessionID string
	Tracer    trace.Tracer // defaults to the global provider's game tracer
}

// Game holds the entire game state.
type Game struct {
	cfg       *config.Config
	log       *logrus.Entry
	tracer    trace.Tracer
	sessionID string

	world    *ecs.World
	spawner  *ascii.Spawner
	worldMap *world.Map
	player   ecs.Entity

	states    *StateMachine
	input     *input.State
	fights    combat.Queue
	combat    *CombatState
	camera    Camera
	enemies   *gamedata.EnemyRegistry
	rng       *rand.Rand
	fadeColor tcell.Color
	inspector *debug.Inspector

	renderer       *ui.Renderer
	playerDefeated bool
	running        bool
}

// New creates a game with the map and player spawned, starting in the overworld.
func New(ctx context.Context, opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Grid == nil {
		return nil, fmt.Errorf("no map grid given")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("game")
	}
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	classes, err := gamedata.LoadClassRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	class := classes.GetByID(cfg.Player.Class)
	if class == nil {
		return nil, fmt.Errorf("unknown player class %q", cfg.Player.Class)
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load enemies: %w", err)
	}
	if cfg.Encounter.Enemy != RandomEnemy && enemies.GetByID(cfg.Encounter.Enemy) == nil {
		return nil, fmt.Errorf("unknown encounter enemy %q", cfg.Encounter.Enemy)
	}
	fadeColor, err := gamedata.ParseHexColor(cfg.Fade.Color)
	if err != nil {
		return nil, fmt.Errorf("invalid fade colour: %w", err)
	}

	log := logger.WithFields(logrus.Fields{"component": "game", "session": sessionID})
	w := ecs.NewWorld()
	g := &Game{
		cfg:       cfg,
		log:       log,
		tracer:    tracer,
		sessionID: sessionID,
		world:     w,
		spawner:   ascii.NewSpawner(w, cfg.Map.CellSize),
		states:    NewStateMachine(StateOverworld, log),
		input:     input.NewState(cfg.Input.HoldWindow),
		enemies:   enemies,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		fadeColor: fadeColor,
		inspector: debug.NewInspector(logger.WithFields(logrus.Fields{"component": "debug", "session": sessionID})),
		running:   true,
	}

	g.worldMap = world.SpawnMap(ctx, w, g.spawner, opts.Grid)
	g.player = entity.SpawnPlayer(w, g.spawner, class, cfg.Player.StartX, cfg.Player.StartY)
	ecs.GetStore[EncounterTracker](w).Set(g.player, NewEncounterTracker(cfg.Encounter.Cooldown))
	if world.IsCollider(opts.Grid.At(cfg.Player.StartX, cfg.Player.StartY)) {
		log.WithFields(logrus.Fields{"x": cfg.Player.StartX, "y": cfg.Player.StartY}).Warn("player starts inside a wall")
	}
	g.followPlayer()
	g.registerHooks()

	span.SetAttributes(
		attribute.Int("map.width", opts.Grid.Width),
		attribute.Int("map.height", opts.Grid.Height),
		attribute.Int("map.tiles", len(g.worldMap.Tiles)),
		attribute.String("player.class", class.ID),
		attribute.String("session.id", sessionID),
	)
	log.WithFields(logrus.Fields{"tiles": len(g.worldMap.Tiles), "class": class.ID}).Info("game initialized")
	return g, nil
}

// registerHooks wires the map, player and combat lifecycles to state changes.
func (g *Game) registerHooks() {
	g.states.OnExit(StateOverworld, func(context.Context) {
		g.worldMap.Hide(g.world)
		g.world.SetVisibleRecursive(g.player, false)
	})
	g.states.OnEnter(StateOverworld, func(context.Context) {
		g.worldMap.Show(g.world)
		g.world.SetVisibleRecursive(g.player, true)
		if g.playerDefeated {
			ecs.GetStore[combat.Stats](g.world).MustGet(g.player).Restore()
			g.playerDefeated = false
			g.log.Info("player restored after defeat")
		}
	})
	g.states.OnEnter(StateCombat, g.startCombat)
	g.states.OnExit(StateCombat, g.endCombat)
}

// State returns the active game state.
func (g *Game) State() State {
	return g.states.Current()
}

// World returns the entity world.
func (g *Game) World() *ecs.World {
	return g.world
}

// SessionID identifies this run in logs and traces.
func (g *Game) SessionID() string {
	return g.sessionID
}

// Player returns the player entity.
func (g *Game) Player() ecs.Entity {
	return g.player
}

// Input returns the input state fed by terminal events.
func (g *Game) Input() *input.State {
	return g.input
}

// Running reports whether the game has not been asked to quit.
func (g *Game) Running() bool {
	return g.running
}

// Tick runs one frame: input latch, the active state's systems, fade, render,
// then input end-of-tick. dt is the wall time since the previous tick.
func (g *Game) Tick(ctx context.Context, dt time.Duration, now time.Time) {
	g.input.BeginTick(now)

	if g.input.JustPressed(input.ActionQuit) {
		g.running = false
	}
	if g.cfg.Debug.Enabled && g.input.JustPressed(input.ActionInspect) {
		g.inspector.Dump(g.world)
	}

	switch g.states.Current() {
	case StateOverworld:
		g.movePlayer(dt)
		g.checkEncounters(ctx, dt)
		g.followPlayer()
	case StateCombat:
		g.forceExitCombat(ctx)
		g.combatInput()
		g.resolveFights(ctx)
		g.enemyTurn()
		g.pinCamera()
	}

	g.updateFades(ctx, dt)

	if g.renderer != nil {
		g.renderer.Render(g.Frame())
	}

	g.input.EndTick()
}

// Frame describes what the renderer should draw this tick.
func (g *Game) Frame() ui.Frame {
	return ui.Frame{
		World:     g.world,
		Camera:    g.camera.Position,
		FadeAlpha: g.FadeAlpha(),
		FadeColor: g.fadeColor,
		Status:    g.status(),
	}
}

// status is the bottom-line summary of the player and the fight.
func (g *Game) status() string {
	stats := ecs.GetStore[combat.Stats](g.world).MustGet(g.player)
	line := fmt.Sprintf("%s | HP %d/%d", g.states.Current(), stats.Health, stats.MaxHealth)
	if g.states.Current() == StateCombat && g.combat != nil {
		line += " | " + g.combat.LastMessage
	}
	return line
}

// Run executes the main game loop until quit or ctx is cancelled.
func (g *Game) Run(ctx context.Context, screen *ui.Screen) error {
	renderer, err := ui.NewRenderer(screen)
	if err != nil {
		return err
	}
	g.renderer = renderer
	defer func() {
		renderer.Close()
		g.renderer = nil
	}()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.FrameInterval())
	defer ticker.Stop()

	g.log.WithField("fps", g.cfg.Render.FPS).Info("game loop started")
	last := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			g.handleEvent(screen, ev)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			g.Tick(ctx, dt, now)
		}
	}
	g.log.Info("game loop stopped")
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(screen *ui.Screen, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if action, ok := input.ActionForKey(ev); ok {
			g.input.Press(action, ev.When())
		}
	case *tcell.EventResize:
		screen.Sync()
	}
}

// Close clears the world and releases game resources.
func (g *Game) Close() {
	for _, e := range g.world.Roots() {
		g.world.DespawnRecursive(e)
	}
}
