package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballfall/internal/config"
	"github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/platform/tui"
	"github.com/vovakirdan/ballfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Ballfall with the start menu",
	Long: `Start Ballfall in interactive menu mode.

Pick a difficulty and a start level, play, and return to the menu
after the game. Tab opens the high score table.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty or start level
  Enter           - Select
  Tab             - High scores
  Q               - Quit

Examples:
  ballfall menu
  ballfall menu --fps 30
  ballfall menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	gameCfg, preset, err := loadGameConfig(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return menuLoop(store, gameCfg, preset, gameCfg.Levels.Start, terminalConfig(), logger)
}

// menuLoop alternates between the menu, the scoreboard and games until the user quits.
func menuLoop(store *storage.Store, gameCfg config.BallfallConfig, preset config.DifficultyPreset, startLevel int, cfg core.RuntimeConfig, logger *log.Logger) error {
	best, saver, scores := storeSources(store)
	if startLevel < 1 {
		startLevel = gameCfg.Levels.Start
	}

	for {
		menuResult, err := tui.RunMenu(cfg, preset, startLevel, gameCfg.Levels.Max)
		if err != nil {
			return err
		}

		// Keep the picks and any size changes for the next round
		cfg = menuResult.Config
		preset = menuResult.Preset
		startLevel = menuResult.StartLevel

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(scores, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		// Fresh seed for every game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		game := tui.NewGame(gameCfg, preset, startLevel, best)
		goBack, err := tui.Run(game, saver, cfg, playerName(), logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !goBack {
			return nil
		}
	}
}
