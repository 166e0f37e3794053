package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-tui/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	cases := []struct {
		key        string
		wantAction core.Action
		wantQuit   bool
	}{
		{"space", core.ActionJump, false},
		{"up", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"k", core.ActionJump, false},
		{"enter", core.ActionConfirm, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			action, isQuit := km.MapKey(keyMsg(tc.key))
			if action != tc.wantAction {
				t.Errorf("action = %v, want %v", action, tc.wantAction)
			}
			if isQuit != tc.wantQuit {
				t.Errorf("isQuit = %v, want %v", isQuit, tc.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if quit := km.MapKeyToFrame(keyMsg("space"), &frame); quit {
		t.Error("space should not be a quit request")
	}
	if !frame.Has(core.ActionJump) {
		t.Error("space should set ActionJump in the frame")
	}

	frame.Clear()
	if quit := km.MapKeyToFrame(keyMsg("q"), &frame); !quit {
		t.Error("q should be a quit request")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(press); got != core.ActionJump {
		t.Errorf("left press = %v, want ActionJump", got)
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(release); got != core.ActionNone {
		t.Errorf("release = %v, want ActionNone", got)
	}

	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if got := km.MapMouse(right); got != core.ActionNone {
		t.Errorf("right press = %v, want ActionNone", got)
	}
}
