// sideeffects is a terminal arcade game: steer a four-sided shape whose
// sides carry effects, and knock colored balls into the matching corners
// before the level clock runs out.
//
// Usage:
//
//	sideeffects play            - Play the campaign from the saved level
//	sideeffects levels          - Show the level table
//	sideeffects sides           - Show the side effects and which are unlocked
//	sideeffects scores          - Show recorded results per level
//	sideeffects serve           - Start an SSH server for remote play
//	sideeffects reset-progress  - Start the campaign over
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Set database path (default: ~/.sideeffects/results.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <preset> - easy, normal or hard
//	--mute                - Disable audio
//	--debug               - Write debug logs
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/session"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sideeffects",
	Short: "Side Effects - a ball sorting arcade game for the terminal",
	Long: `Side Effects is a terminal arcade game. You steer a square whose four
sides each carry an effect: speed balls up, freeze the others, duplicate
them and more. Knock every ball into the corner of its own color before the
level clock runs out. Passing a level unlocks new effects.

Available commands:
  play            - Play the campaign
  levels          - Show the level table
  sides           - Show the side effects
  scores          - Show recorded results
  serve           - Start SSH server for remote play
  reset-progress  - Start the campaign over

Examples:
  sideeffects play
  sideeffects play --difficulty easy
  sideeffects levels --count 10
  sideeffects serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.sideeffects/results.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.BoolVar(&flagDebug, "debug", false, "Write debug logs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(sidesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadTuning reads the tuning file and applies the difficulty preset.
func loadTuning() (config.Tuning, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Tuning{}, err
	}
	t, err := config.LoadTuning(flagConfig)
	if err != nil {
		return config.Tuning{}, err
	}
	config.ApplyPreset(&t, preset)
	return t, nil
}

// newLogger returns a logger for w. Debug level is enabled by --debug.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// gameLogger returns the logger for a TUI session. The terminal belongs to
// the game, so logs go to a file and only when --debug is set.
func gameLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}
	path := config.UserPath("sideeffects.log")
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "sideeffects"), func() { f.Close() }
}

// loadCampaign creates a campaign and restores the saved progress. The
// returned store is nil when saves are unavailable.
func loadCampaign(t config.Tuning, seed int64, logger *log.Logger) (*campaign.Campaign, campaign.Store) {
	c := campaign.New(campaign.Options{
		Params: session.ParamsFrom(t),
		Seed:   seed,
		Logger: logger,
	})

	store, err := campaign.OpenStore(campaign.AppName)
	if err != nil {
		logger.Warn("progress will not be saved", "error", err)
		return c, nil
	}
	if err := c.Load(store); err != nil && !errors.Is(err, campaign.ErrNoProgress) {
		logger.Warn("could not load progress, starting over", "error", err)
	}
	return c, store
}
