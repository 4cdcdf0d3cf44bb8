package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballfall/internal/config"
	"github.com/vovakirdan/ballfall/internal/core"
)

func sendMenu(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(MenuModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestMenuDefaults(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyHard, 3, 10)

	if m.Preset() != config.DifficultyHard {
		t.Errorf("Preset() = %s, want hard", m.Preset())
	}
	if m.StartLevel() != 3 {
		t.Errorf("StartLevel() = %d, want 3", m.StartLevel())
	}

	// Unknown presets fall back to normal, levels clamp into range
	m = NewMenuModel(core.DefaultConfig(), "bogus", 99, 10)
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("Preset() = %s, want normal", m.Preset())
	}
	if m.StartLevel() != 10 {
		t.Errorf("StartLevel() = %d, want 10", m.StartLevel())
	}
}

func TestMenuAdjustRows(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyNormal, 1, 5)
	down := tea.KeyMsg{Type: tea.KeyDown}
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m = sendMenu(t, m, down, right)
	if m.Preset() != config.DifficultyHard {
		t.Errorf("after right: Preset() = %s, want hard", m.Preset())
	}

	m = sendMenu(t, m, left, left)
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("after left x2: Preset() = %s, want easy", m.Preset())
	}

	// Wraps from the first preset to fixed
	m = sendMenu(t, m, left)
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("after wrap: Preset() = %s, want fixed", m.Preset())
	}

	m = sendMenu(t, m, down, right, right)
	if m.StartLevel() != 3 {
		t.Errorf("StartLevel() = %d, want 3", m.StartLevel())
	}
	m = sendMenu(t, m, left, left, left, left)
	if m.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, want 1 (clamped)", m.StartLevel())
	}
}

func TestMenuSelect(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	down := tea.KeyMsg{Type: tea.KeyDown}

	tests := []struct {
		name       string
		keys       []tea.Msg
		play       bool
		scoreboard bool
		quit       bool
	}{
		{"play", []tea.Msg{enter}, true, false, false},
		{"scores row", []tea.Msg{down, down, down, enter}, false, true, false},
		{"tab", []tea.Msg{tea.KeyMsg{Type: tea.KeyTab}}, false, true, false},
		{"quit row", []tea.Msg{down, down, down, down, enter}, false, false, true},
		{"q", []tea.Msg{runeKey("q")}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sendMenu(t, NewMenuModel(core.DefaultConfig(), config.DifficultyNormal, 1, 5), tt.keys...)
			if m.WantsPlay() != tt.play || m.WantsScoreboard() != tt.scoreboard || m.IsQuitting() != tt.quit {
				t.Errorf("play=%v scoreboard=%v quit=%v, want %v %v %v",
					m.WantsPlay(), m.WantsScoreboard(), m.IsQuitting(), tt.play, tt.scoreboard, tt.quit)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyExpert, 2, 5)
	m = sendMenu(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.Config().ScreenW != 100 || m.Config().ScreenH != 40 {
		t.Errorf("Config() size = %dx%d, want 100x40", m.Config().ScreenW, m.Config().ScreenH)
	}

	view := m.View()
	for _, want := range []string{"B A L L F A L L", "expert", "Start level: < 2 >", "High scores"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText = %q, want unchanged", got)
	}
}
