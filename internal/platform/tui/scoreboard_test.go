package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ballfall/internal/storage"
)

type fakeScores struct {
	calls []int
	runs  map[int][]storage.RunEntry
}

func (f *fakeScores) TopScores(difficulty, limit int) ([]storage.RunEntry, error) {
	f.calls = append(f.calls, difficulty)
	return f.runs[difficulty], nil
}

func sendScoreboard(t *testing.T, m ScoreboardModel, msgs ...tea.Msg) ScoreboardModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(ScoreboardModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestScoreboardTabs(t *testing.T) {
	src := &fakeScores{runs: map[int][]storage.RunEntry{
		0: {{Player: "alice", Score: 120, Difficulty: 2, CreatedAt: time.Now()}},
		1: {{Player: "bob", Score: 40, Difficulty: 1, CreatedAt: time.Now()}},
	}}
	m := NewScoreboardModel(src, 100, 30)

	if m.Difficulty() != 0 {
		t.Fatalf("Difficulty() = %d, want 0", m.Difficulty())
	}
	if !strings.Contains(m.View(), "alice") {
		t.Error("All tab should list alice")
	}

	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Difficulty() != 1 {
		t.Errorf("after tab: Difficulty() = %d, want 1", m.Difficulty())
	}
	if view := m.View(); !strings.Contains(view, "bob") || strings.Contains(view, "alice") {
		t.Error("Easy tab should list only bob")
	}

	// Wraps backwards from All to Insane
	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Difficulty() != 5 {
		t.Errorf("after wrap: Difficulty() = %d, want 5", m.Difficulty())
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty tab should show the placeholder")
	}

	want := []int{0, 1, 0, 5}
	if len(src.calls) != len(want) {
		t.Fatalf("TopScores calls = %v, want %v", src.calls, want)
	}
	for i := range want {
		if src.calls[i] != want[i] {
			t.Errorf("TopScores calls = %v, want %v", src.calls, want)
			break
		}
	}
}

func TestScoreboardNilSource(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("nil source should show the placeholder")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := sendScoreboard(t, NewScoreboardModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Errorf("esc: back=%v quit=%v", m.IsGoingBack(), m.IsQuitting())
	}

	m = sendScoreboard(t, NewScoreboardModel(nil, 80, 24), runeKey("q"))
	if m.IsGoingBack() || !m.IsQuitting() {
		t.Errorf("q: back=%v quit=%v", m.IsGoingBack(), m.IsQuitting())
	}
}
