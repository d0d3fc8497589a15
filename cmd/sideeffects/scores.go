package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/side-effects/internal/platform/tui"
	"github.com/vovakirdan/side-effects/internal/storage"
)

var (
	flagScoresLevel int
	flagScoresPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded results",
	Long: `Show the best score of every level played. In a terminal this opens the
results browser; use --plain for text output.

Examples:
  sideeffects scores
  sideeffects scores --plain
  sideeffects scores --level 3`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Show the top results of one level")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print text instead of the results browser")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagScoresLevel > 0 {
		return printLevel(store, flagScoresLevel)
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	stats, err := store.LevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sideeffects play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-5s  %-6s  %-8s  %-6s  %s\n", "Level", "Best", "Attempts", "Passes", "Last played")
	fmt.Printf("  %-5s  %-6s  %-8s  %-6s  %s\n", "-----", "----", "--------", "------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-5d  %-6d  %-8d  %-6d  %s\n", s.Level, s.BestScore, s.Attempts, s.Passes, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	if highest, err := store.HighestPassed(); err == nil && highest > 0 {
		fmt.Printf("\nHighest level passed: %d\n", highest)
	}
	return nil
}

func printLevel(store *storage.Store, lvl int) error {
	results, err := store.TopScores(lvl, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Level %d\n\n", lvl)
	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")
	for i, r := range results {
		result := "fail"
		if r.Passed {
			result = "pass"
		}
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-6d  %-6s  %-12s  %s\n", i+1, r.Score, result, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, ok, err := store.BestScore(lvl); err == nil && ok {
		fmt.Printf("\nBest: %d\n", best)
	}
	return nil
}
