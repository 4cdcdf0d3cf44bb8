package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballfall/internal/config"
	"github.com/vovakirdan/ballfall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores. Without --difficulty every run is listed;
with it only runs of that rank are shown.

Examples:
  ballfall scores
  ballfall scores --difficulty hard --limit 20
  ballfall scores --difficulty easy --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored runs instead of listing them")
}

// difficultyFlag returns the rank selected by --difficulty, 0 for all.
func difficultyFlag() (int, string, error) {
	if flagDifficulty == "" {
		return 0, "All difficulties", nil
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return 0, "", err
	}
	if config.IsFixedPreset(preset) {
		return 0, "", fmt.Errorf("fixed has no rank of its own, pick easy..insane")
	}
	return preset.Rank(), string(preset), nil
}

func runScores(_ *cobra.Command, _ []string) error {
	difficulty, title, err := difficultyFlag()
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(difficulty); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores - %s\n", title)
		return nil
	}

	scores, err := store.TopScores(difficulty, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ballfall play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-4s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Diff", "Level", "Chain", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-4s  %-5s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-4d  %-5d  %-5d  %s\n",
			i+1, entry.Player, entry.Score, entry.Difficulty, entry.Level, entry.MaxCascade, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(difficulty); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	return nil
}
