package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-tui/internal/core"
	"github.com/vovakirdan/flappy-tui/internal/flappy"
)

// Model is the Bubble Tea model that runs the game loop.
type Model struct {
	game   *flappy.Game
	screen *core.Screen
	config core.RuntimeConfig
	keymap *KeyMapper
	frame  core.InputFrame

	// pendingResize marks a resize that arrived after a run ended; the
	// game still holds the old canvas until the player restarts.
	pendingResize bool
	quitting      bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *flappy.Game, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keymap: NewKeyMapper(),
		frame:  core.NewInputFrame(),
	}
}

// Init initializes the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keymap.MapMouse(msg); action != core.ActionNone {
			m.frame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keymap.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. A live run cannot survive a
// canvas change, so the game starts over; a finished run keeps its
// game-over screen and adopts the new size when the player restarts.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.game.State().GameOver {
		m.pendingResize = true
	} else {
		m.game.Reset(m.config)
		m.pendingResize = false
	}

	return m, nil
}

// handleTick advances the simulation by one frame. Everything else, from
// phase transitions to score persistence, happens inside the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.pendingResize && m.frame.Has(core.ActionRestart) {
		// The finished run still sits on the old canvas; rebuild the
		// game on the current one and start the new run directly.
		m.game.Reset(m.config)
		m.pendingResize = false
		m.frame.Clear()
		m.frame.Set(core.ActionConfirm)
	}
	m.game.Step(m.frame)
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("flappy_%s.txt", timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *flappy.Game, cfg core.RuntimeConfig) error {
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	_, err := p.Run()
	return err
}
