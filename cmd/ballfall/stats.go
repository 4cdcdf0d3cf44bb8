package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballfall/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated statistics",
	Long: `Display per-difficulty run statistics and the matched balls by type
and color.

Examples:
  ballfall stats
  ballfall stats --difficulty insane`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	difficulty, title, err := difficultyFlag()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	fmt.Printf("Statistics - %s\n", title)
	fmt.Println()

	if difficulty == 0 {
		all, err := store.GetAllStats()
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %-8s  %s\n", "Diff", "Games", "Best", "Average", "Balls", "Chain")
		for _, d := range slices.Sorted(maps.Keys(all)) {
			printStatsRow(all[d])
		}
	} else {
		stats, err := store.GetStats(difficulty)
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		if stats.GamesCount == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %-8s  %s\n", "Diff", "Games", "Best", "Average", "Balls", "Chain")
		printStatsRow(stats)
		fmt.Printf("\nLast played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	matches, err := store.MatchStats(difficulty)
	if err != nil {
		return fmt.Errorf("retrieving match stats: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Matched balls")
	for _, m := range matches {
		color := string(m.Color)
		if color == "" {
			color = "-"
		}
		fmt.Printf("  %-20s  %-8s  %d\n", m.Type, color, m.Count)
	}
	return nil
}

func printStatsRow(s *storage.RunStats) {
	fmt.Printf("  %-4d  %-6d  %-8d  %-8.1f  %-8d  %d\n",
		s.Difficulty, s.GamesCount, s.HighScore, s.AvgScore, s.BallsCleared, s.MaxCascade)
}
