package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
	"github.com/vovakirdan/flappy-tui/internal/flappy"
)

func newTestModel(t *testing.T) (Model, *flappy.Game) {
	t.Helper()
	cfg := config.DefaultConfig()
	game := flappy.New(&cfg, nil)
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestTickAdvancesSimulation(t *testing.T) {
	m, game := newTestModel(t)

	before := game.Snapshot().Tick
	m, cmd := update(t, m, TickMsg(time.Now()))
	if got := game.Snapshot().Tick; got != before+1 {
		t.Errorf("tick count = %d, want %d", got, before+1)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(time.Now()))
	if got := game.Snapshot().Tick; got != before+2 {
		t.Errorf("tick count = %d, want %d", got, before+2)
	}
}

func TestQuitKeyStopsProgram(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, keyMsg("q"))
	if !m.quitting {
		t.Error("q should mark the model as quitting")
	}
	if cmd == nil {
		t.Error("q should produce a quit command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestEnterStartsRun(t *testing.T) {
	m, game := newTestModel(t)

	m, _ = update(t, m, keyMsg("enter"))
	update(t, m, TickMsg(time.Now()))
	if game.Phase() != flappy.PhasePlaying {
		t.Errorf("phase = %v, want Playing after enter", game.Phase())
	}
}

func TestMouseTapStartsRun(t *testing.T) {
	m, game := newTestModel(t)

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, press)
	update(t, m, TickMsg(time.Now()))
	if game.Phase() != flappy.PhasePlaying {
		t.Errorf("phase = %v, want Playing after a tap", game.Phase())
	}
}

func TestResizeRestartsLiveRun(t *testing.T) {
	m, game := newTestModel(t)

	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, TickMsg(time.Now()))
	if game.Phase() != flappy.PhasePlaying {
		t.Fatalf("phase = %v, want Playing before resize", game.Phase())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Phase() != flappy.PhaseMenu {
		t.Errorf("resize during a run should reset to the menu, got %v", game.Phase())
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestResizeWhileEndedAppliesOnRestart(t *testing.T) {
	cfg := config.DefaultConfig()
	game := flappy.New(&cfg, nil)
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	m.Init()

	m, _ = update(t, m, keyMsg("enter"))
	for i := 0; i < 300 && !game.State().GameOver; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if !game.State().GameOver {
		t.Fatal("unpiloted run should have crashed within 300 ticks")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !game.State().GameOver {
		t.Fatal("resize after the crash should keep the game-over screen")
	}

	m, _ = update(t, m, keyMsg("r"))
	m, _ = update(t, m, TickMsg(time.Now()))

	if game.Phase() != flappy.PhasePlaying {
		t.Fatalf("restart after a resize should start a run, got %v", game.Phase())
	}
	// The new run spawns at the middle of the resized canvas plus one
	// tick of gravity.
	wantY := int((40.0/2 + cfg.Physics.Gravity) * 1000)
	if got := game.Snapshot().BodyY; got != wantY {
		t.Errorf("restarted body should spawn on the new canvas, BodyY = %d, want %d", got, wantY)
	}
}

func TestViewRendersGame(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, TickMsg(time.Now()))
	view := m.View()
	if view == "" {
		t.Fatal("view should not be empty")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, want 24", lines)
	}
}
