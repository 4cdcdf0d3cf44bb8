package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ballfall/internal/config"
	"github.com/vovakirdan/ballfall/internal/core"
)

// Menu rows.
const (
	menuPlay = iota
	menuDifficulty
	menuStartLevel
	menuScores
	menuQuit
	menuRows
)

// menuPresets are the choices of the difficulty row.
var menuPresets = append(append([]config.DifficultyPreset{}, config.Presets...), config.DifficultyFixed)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor     int
	preset     int // Index into menuPresets
	startLevel int
	maxLevel   int
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper

	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The preset and start level seed
// the picker; maxLevel bounds the start level.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset, startLevel, maxLevel int) MenuModel {
	idx := 1
	for i, p := range menuPresets {
		if p == preset {
			idx = i
		}
	}
	if maxLevel < 1 {
		maxLevel = 1
	}

	return MenuModel{
		preset:     idx,
		startLevel: core.Clamp(startLevel, 1, maxLevel),
		maxLevel:   maxLevel,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuRows-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, tea.Quit
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjust cycles the value of the selected row.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case menuDifficulty:
		m.preset = (m.preset + delta + len(menuPresets)) % len(menuPresets)
	case menuStartLevel:
		m.startLevel = core.Clamp(m.startLevel+delta, 1, m.maxLevel)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("B A L L F A L L", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Match three or more balls of one color", m.width))
	b.WriteString("\n\n")

	rows := []string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", m.Preset()),
		fmt.Sprintf("Start level: < %d >", m.startLevel),
		"High scores",
		"Quit",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := centerText(cursor+row, m.width)
		if i == m.cursor {
			line = activeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(centerText("Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Preset returns the selected difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return menuPresets[m.preset]
}

// StartLevel returns the selected start level.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// WantsPlay returns true if the user started a game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	StartLevel      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset, startLevel, maxLevel int) (MenuResult, error) {
	model := NewMenuModel(cfg, preset, startLevel, maxLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Preset:     m.Preset(),
		StartLevel: m.StartLevel(),
		Config:     m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), !m.WantsPlay():
		result.Quit = true
	}

	return result, nil
}
