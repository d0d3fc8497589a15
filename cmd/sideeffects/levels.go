package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/side-effects/internal/level"
	"github.com/vovakirdan/side-effects/internal/session"
)

var flagLevelCount int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long: `Print the settings of the first levels of the campaign. Levels past the
hand-authored ones are generated by tightening the previous level.

Examples:
  sideeffects levels
  sideeffects levels --count 12`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", level.HandAuthoredCount()+2, "Number of levels to show")
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Printf("  %-5s  %-6s  %-5s  %-6s  %-8s  %-5s  %s\n", "Level", "Time", "Need", "Group", "Respite", "Balls", "Unlocks")
	fmt.Printf("  %-5s  %-6s  %-5s  %-6s  %-8s  %-5s  %s\n", "-----", "----", "----", "-----", "-------", "-----", "-------")

	lvl := level.First()
	for range max(flagLevelCount, 1) {
		types := session.ActiveBallTypes(lvl)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}

		unlocks := make([]string, len(lvl.SidesToUnlock))
		for i, t := range lvl.SidesToUnlock {
			unlocks[i] = t.Name()
		}

		fmt.Printf("  %-5d  %-6s  %-5d  %-6s  %-8s  %-5s  %s\n",
			lvl.ID,
			lvl.Duration,
			lvl.MinScore,
			fmt.Sprintf("%dx%s", lvl.BallsPerGroup, lvl.TimeBetweenSpawnsInGroup),
			lvl.MaxRespiteTime,
			strings.Join(names, ""),
			strings.Join(unlocks, ", "),
		)
		lvl = level.Next(lvl)
	}
}
