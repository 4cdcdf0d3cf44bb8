package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballfall/internal/config"
	"github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall"
)

// BestSource looks up the best score of a difficulty.
type BestSource interface {
	HighScore(difficulty int) (int, error)
}

// NewGame builds a session for a difficulty preset and start level.
// A start level of 0 keeps the configured one. best may be nil.
func NewGame(cfg config.BallfallConfig, preset config.DifficultyPreset, startLevel int, best BestSource) *ballfall.Game {
	if preset != "" {
		config.ApplyBallfallPreset(&cfg, preset)
	}
	if startLevel > 0 {
		cfg.Levels.Start = startLevel
	}

	game := ballfall.New(cfg)
	if best != nil {
		if high, err := best.HighScore(game.Difficulty()); err == nil {
			game.SetBest(high)
		}
	}
	return game
}

// GameModel is the Bubble Tea model running one Ballfall game.
type GameModel struct {
	game       *ballfall.Game
	screen     *core.Screen
	saver      ballfall.RunSaver
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewGameModel creates a model for the given game. saver may be nil.
func NewGameModel(game *ballfall.Game, saver ballfall.RunSaver, cfg core.RuntimeConfig, player string, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:      saver,
		logger:     logger,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from a paused or finished game
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun persists the finished game. Failures are logged, play goes on.
func (m *GameModel) saveRun() {
	if m.saver == nil || m.gameState.Score == 0 {
		return
	}
	run := m.game.Summary(m.player)
	id, err := m.saver.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "player", m.player, "score", run.Score, "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "player", m.player, "score", run.Score, "difficulty", run.Difficulty)
}

// saveScreenshot writes the current screen as plain text to ~/.ballfall/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ballfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("ballfall_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal until the user quits or goes back.
// Returns true if the user asked to go back to the menu.
func Run(game *ballfall.Game, saver ballfall.RunSaver, cfg core.RuntimeConfig, player string, logger *log.Logger) (bool, error) {
	model := NewGameModel(game, saver, cfg, player, logger)

	p := tea.NewProgram(
		backOnExit{model},
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(backOnExit); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}

// backOnExit ends the program when the wrapped game asks for the menu.
type backOnExit struct {
	GameModel
}

func (b backOnExit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		b.GameModel = gm
	}
	if b.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}
