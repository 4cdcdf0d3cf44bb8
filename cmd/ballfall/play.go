package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall"
	"github.com/vovakirdan/ballfall/internal/platform/tui"
	"github.com/vovakirdan/ballfall/internal/storage"
)

var (
	flagStartLevel int
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Ballfall right away.

Controls:
  Left/Right, A/D  - Move piece
  Up/W/X           - Rotate clockwise
  Z                - Rotate counter-clockwise
  Down/S           - Soft drop
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Back to menu (paused or game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy .. insane   - Ranked presets 1..5, scores are kept per rank
  fixed            - Configured rank, no speed progression

Examples:
  ballfall play
  ballfall play --difficulty hard
  ballfall play --start-level 4 --seed 42
  ballfall play --config ./my-ballfall.yaml`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "start-level", 0, "Start level (0 = from config)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with scores (default: $USER)")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName returns --player, falling back to the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// openStore opens the scores database. The game still runs without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// storeSources splits the store into the interfaces the TUI consumes.
// A nil store yields nil interfaces, never typed nils.
func storeSources(store *storage.Store) (tui.BestSource, ballfall.RunSaver, tui.ScoreSource) {
	if store == nil {
		return nil, nil, nil
	}
	return store, store, store
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	gameCfg, preset, err := loadGameConfig(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	best, saver, _ := storeSources(store)

	cfg := terminalConfig()
	game := tui.NewGame(gameCfg, preset, flagStartLevel, best)
	logger.Debug("starting game", "preset", preset, "difficulty", game.Difficulty(), "seed", cfg.Seed)

	goBack, err := tui.Run(game, saver, cfg, playerName(), logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if goBack {
		return menuLoop(store, gameCfg, preset, flagStartLevel, cfg, logger)
	}
	return nil
}
