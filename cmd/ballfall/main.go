// ballfall is a falling-piece match and cascade puzzle for the terminal.
//
// Usage:
//
//	ballfall play            - Play a game directly
//	ballfall menu            - Start menu with difficulty picker and scoreboard
//	ballfall serve           - Start SSH server for remote play
//	ballfall scores          - Show high scores
//	ballfall stats           - Show aggregated statistics
//	ballfall simulate        - Run headless autoplay games
//	ballfall config          - Write or print the game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.ballfall/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy..insane, 1..5 or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballfall/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballfall",
	Short: "Ballfall - match colored balls in your terminal",
	Long: `Ballfall is a falling-piece puzzle. Pieces of colored balls drop into
a well; lines of three or more balls of one color clear, the balls above
fall and new matches cascade for bonus points.

Available commands:
  play      - Play a game directly
  menu      - Interactive menu with difficulty picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  stats     - View aggregated statistics
  simulate  - Run headless autoplay games
  config    - Manage the game configuration

Examples:
  ballfall play --difficulty hard
  ballfall menu
  ballfall serve --ssh :2222
  ballfall simulate --games 20 --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert, insane, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the stderr logger for the selected level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ballfall",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadGameConfig loads, validates and normalizes the game configuration,
// then resolves the difficulty preset from --difficulty or the config rank.
func loadGameConfig(logger *log.Logger) (config.BallfallConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadBallfall(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	for _, verr := range cfg.Validate() {
		logger.Warn("invalid config value replaced by default", "code", verr.Code, "detail", verr.Message)
	}
	cfg = cfg.Normalize()

	preset := config.PresetForRank(cfg.Difficulty.Rank)
	if flagDifficulty != "" {
		preset, err = config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, "", err
		}
	}
	return cfg, preset, nil
}
