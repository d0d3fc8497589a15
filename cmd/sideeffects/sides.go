package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/sides"
)

var sidesCmd = &cobra.Command{
	Use:   "sides",
	Short: "Show the side effects",
	Long: `List every side effect, whether the saved campaign has unlocked it and
the current side configuration.`,
	Args: cobra.NoArgs,
	RunE: runSides,
}

func runSides(_ *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	c, _ := loadCampaign(tuning, 1, log.New(io.Discard))

	fmt.Printf("Campaign at level %d\n\n", c.Level().ID)
	for _, t := range sides.All() {
		mark := " "
		if c.IsUnlocked(t) {
			mark = "*"
		}
		multi := "exclusive"
		if t.MultipleAllowed() {
			multi = "any number"
		}
		fmt.Printf(" %s %-20s %-10s bounce %.1f\n", mark, t.Name(), multi, t.Restitution())
		fmt.Printf("   %s\n", t.Description())
	}
	fmt.Println("\n * unlocked")

	fmt.Println("\nSides")
	cfg := c.Sides()
	for id := sides.ID(0); id < sides.Count; id++ {
		fmt.Printf("  %d  %s\n", id, cfg.Get(id).Name())
	}

	if path := config.UserPath(); path != "" {
		fmt.Printf("\nConfig directory: %s\n", path)
	}
	return nil
}
