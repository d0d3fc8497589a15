package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/side-effects/internal/audio"
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/platform/tui"
	"github.com/vovakirdan/side-effects/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Play the campaign. The title screen offers to continue from the last
level reached, start a new campaign or reset the saved progress.

Controls:
  W/A/S/D    - Move the shape
  Left/Right - Rotate the shape
  P/Esc      - Pause
  R          - Restart the level
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Between levels, pick the effect of each side with the arrow keys, then press
Enter to continue.

Examples:
  sideeffects play
  sideeffects play --difficulty hard --mute
  sideeffects play --continue
  sideeffects play --seed 42 --config ./tuning.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var flagContinue bool

func init() {
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Skip the title screen and resume the saved level")
}

func runPlay(_ *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	logger, closeLog := gameLogger()
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
		Muted:    flagMute,
	}

	c, progress := loadCampaign(tuning, seed, logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	sound := audio.Open(flagMute, logger)

	runErr := tui.Run(tui.Options{
		Config:    cfg,
		Tuning:    tuning,
		Campaign:  c,
		Progress:  progress,
		Store:     store,
		Cues:      sound,
		Music:     sound,
		Logger:    logger,
		SkipTitle: flagContinue,
	})

	sound.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
