// Package flappy implements a terminal Flappy Bird: a gravity-bound
// body threads the gaps in an endless stream of scrolling pipes.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
	"github.com/vovakirdan/flappy-tui/internal/input"
)

// Minimum playable screen size.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Phase is the game's top-level state. Transitions only happen through
// routed input events and collisions; rendering and ticking never change
// the phase on their own.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Game is the complete game state machine. It is not safe for
// concurrent use; the host drives Step and Render from one goroutine.
type Game struct {
	cfg    *config.Config
	diff   *config.DifficultyManager
	score  *ScoreKeeper
	router *input.Router
	sound  Sounder

	body    *Body
	preview *Body // menu-only decorative body, never collides or scores
	field   *Field

	phase     Phase
	tickCount int
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	startX    float64
	startY    float64

	collided   bool
	collisionX float64
	collisionY float64
	newBest    bool

	tooSmall bool
}

// New creates a game backed by the given config and score store. A nil
// store keeps scores in memory only. Event subscriptions are wired once
// here; Reset never re-subscribes.
func New(cfg *config.Config, store Persister) *Game {
	g := &Game{
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		score:  NewScoreKeeper(store),
		router: input.NewRouter(time.Duration(cfg.Input.PrimaryCooldownMs) * time.Millisecond),
	}
	g.router.On(input.EventStart, g.onStart)
	g.router.On(input.EventPrimary, g.onPrimary)
	g.router.On(input.EventRestart, g.onRestart)
	return g
}

// SetSound installs a sound sink. Passing nil silences the game.
func (g *Game) SetSound(s Sounder) { g.sound = s }

// Router exposes the input router so hosts can feed events from sources
// outside the tick loop, such as mouse clicks.
func (g *Game) Router() *input.Router { return g.router }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Reset reinitializes the session for the given runtime config: fresh
// bodies, a fresh seeded field, and the menu phase. The best score and
// router subscriptions survive.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.tickCount = 0
	g.collided = false
	g.newBest = false
	g.phase = PhaseMenu
	g.score.Reset()
	g.router.Reset()

	g.tooSmall = rt.ScreenW < MinScreenW || rt.ScreenH < MinScreenH
	if g.tooSmall {
		return
	}

	field, err := NewField(rt.Seed, rt.ScreenW, rt.ScreenH, g.cfg, g.diff)
	if err != nil {
		// The configured gap cannot fit this screen; treat it like a
		// too-small terminal instead of spawning broken obstacles.
		g.tooSmall = true
		return
	}
	g.field = field
	g.rng = rand.New(rand.NewSource(rt.Seed))

	g.startX = float64(g.cfg.Player.X)
	g.startY = float64(rt.ScreenH) / 2
	w := float64(g.cfg.Player.Width)
	h := float64(g.cfg.Player.Height)
	g.body = NewBody(g.startX, g.startY, g.cfg.Physics, w, h)
	g.preview = NewBody(g.startX, g.startY, g.cfg.Physics, w, h)
}

// Step advances the simulation by one tick. Input actions are routed
// before physics so a flap lands on the tick it was pressed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		// A tap both starts from the menu and flaps: the start event
		// flips the phase first, then the primary event applies the jump.
		g.router.Trigger(input.EventStart)
		g.router.Trigger(input.EventPrimary)
	}
	if in.Has(core.ActionConfirm) {
		g.router.Trigger(input.EventStart)
	}
	if in.Has(core.ActionRestart) {
		g.router.Trigger(input.EventRestart)
	}

	g.tickCount++
	switch g.phase {
	case PhaseMenu:
		g.stepMenu()
	case PhasePlaying:
		g.stepPlaying()
	case PhaseEnded:
		g.stepEnded()
	}

	return core.StepResult{State: g.State()}
}

// stepMenu animates the attract screen: a bouncing preview body and
// occasional decorative obstacles that drift by without ever scoring.
func (g *Game) stepMenu() {
	g.preview.Integrate()
	g.preview.Rebound(g.menuBounceY(), g.cfg.Menu.ReboundVelocity)

	if g.rng.Float64() < g.cfg.Menu.SpawnChance {
		g.field.Generate(0, 0)
	}
	g.field.Drift()
}

// stepPlaying runs one live tick: body physics, field scroll, scoring,
// then collision checks in that order.
func (g *Game) stepPlaying() {
	g.body.Integrate()
	g.field.Advance(g.score.Current(), g.tickCount)

	if g.field.CheckScore(g.body.X()) {
		g.score.Increment()
		g.play(SoundScore)
	}

	box := g.body.Bounds()
	floor := g.floorY()
	switch {
	case g.field.CollidesWith(box):
		g.endRun()
	case g.body.Grounded(floor):
		g.endRun()
	case g.body.OutOfBounds(floor):
		// Safety net: if the body somehow skips past the ground band,
		// the run still ends.
		g.endRun()
	}
}

// stepEnded lets the downed body fall to the ground and bounce there
// with decaying energy for as long as the phase lasts. Integration runs
// first so each settle's upward kick actually lifts the body off the
// floor before the next ground contact damps it again.
func (g *Game) stepEnded() {
	g.body.Integrate()
	floor := g.floorY()
	if g.body.Grounded(floor) {
		g.body.ClampToFloor(floor)
		g.body.Settle()
	}
}

// endRun enters the ended phase: the collision point is recorded for
// the crash marker, the record check happens now (Increment already
// raised best, so a tie at non-zero counts), and the run is counted.
func (g *Game) endRun() {
	g.phase = PhaseEnded
	g.collided = true
	g.collisionX = g.body.X()
	g.collisionY = g.body.Y()
	g.newBest = g.score.IsNewBest()
	g.score.RecordGame()
	g.play(SoundHit)
	if g.newBest {
		g.play(SoundBest)
	}
}

// onStart begins a run from the menu. Obstacles already drifting across
// the menu stay where they are and become live.
func (g *Game) onStart() {
	if g.phase != PhaseMenu {
		return
	}
	g.score.Reset()
	g.phase = PhasePlaying
}

// onPrimary flaps. Outside the playing phase the event is ignored.
func (g *Game) onPrimary() {
	if g.phase != PhasePlaying {
		return
	}
	g.body.ApplyJump()
	g.play(SoundFlap)
}

// onRestart starts a fresh run directly from the ended phase.
func (g *Game) onRestart() {
	if g.phase != PhaseEnded {
		return
	}
	g.body.Reset(g.startX, g.startY)
	g.field.Reset()
	g.score.Reset()
	g.router.Reset()
	g.collided = false
	g.newBest = false
	g.phase = PhasePlaying
}

// State returns the host-visible snapshot of score and phase.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Current(),
		Best:     g.score.Best(),
		GameOver: g.phase == PhaseEnded,
	}
}

// Close tears down the router subscriptions. The game must not be
// stepped afterwards.
func (g *Game) Close() {
	g.router.RemoveAll()
}

// floorY is the y of the ground line the body lands on.
func (g *Game) floorY() float64 {
	return float64(g.runtime.ScreenH - g.cfg.World.GroundHeight)
}

// menuBounceY is the y the menu preview bounces off.
func (g *Game) menuBounceY() float64 {
	return float64(g.runtime.ScreenH) * g.cfg.Menu.BounceFloor
}

func (g *Game) play(s Sound) {
	if g.sound != nil {
		g.sound.Play(s)
	}
}
