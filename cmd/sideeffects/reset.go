package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/storage"
)

var flagResetResults bool

var resetCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Start the campaign over",
	Long: `Reset the saved campaign to level 1 with every side set to Nothing
Special. Recorded results are kept unless --results is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetResults, "results", false, "Also delete recorded results")
}

func runReset(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "sideeffects")

	store, err := campaign.OpenStore(campaign.AppName)
	if err != nil {
		return err
	}
	c := campaign.New(campaign.Options{Logger: logger})
	c.Reset()
	if err := c.Save(store); err != nil {
		return err
	}
	fmt.Println("Campaign progress reset.")

	if !flagResetResults {
		return nil
	}
	results, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer results.Close()
	if err := results.ClearResults(); err != nil {
		return err
	}
	fmt.Println("Recorded results deleted.")
	return nil
}
