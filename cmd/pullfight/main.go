package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/pullfight/internal/config"
	"github.com/ensigniasec/pullfight/internal/physics"
	"github.com/ensigniasec/pullfight/internal/sim"
	"github.com/ensigniasec/pullfight/internal/tui"
	"github.com/ensigniasec/pullfight/internal/validate"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile = config.DefaultPath
	verbose    bool
	seed       uint64
	fps        int
	logFile    string

	rootCmd = &cobra.Command{
		Use:   "pullfight",
		Short: "A social feed whose pull-to-refresh fights back.",
		Long:  `A terminal feed mockup. Drag down with the mouse to pull-to-refresh and watch it resist, taunt you, and refresh absolutely nothing. Hold Ctrl or Alt while dragging for a two-finger pull.`,
		// Errors are reported once by Execute, without the usage text.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd.RunE(cmd, args)
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr so simulate --json stays clean on stdout.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for jerks and taunts (0 picks a random seed)")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "Override the configured frame rate")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file while the TUI is running")

	simulateCmd.Flags().Float64Var(&simPull, "pull", 400, "Total downward pointer travel")
	simulateCmd.Flags().IntVar(&simSteps, "steps", 30, "Number of pointer moves, one per frame")
	simulateCmd.Flags().DurationVar(&simHold, "hold", 0, "How long to hold before releasing")
	simulateCmd.Flags().BoolVar(&simMulti, "multi", false, "Pull with two contact points")
	simulateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output frames as JSON instead of a table")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(tauntsCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

// loadConfig applies logging flags and reads the config with CLI overrides.
func loadConfig() (config.Config, error) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("unable to load config: %w", err)
	}
	if fps != 0 {
		if err := validate.Var(fps, "gte=1,lte=240"); err != nil {
			return config.Config{}, fmt.Errorf("invalid --fps %d: %w", fps, err)
		}
		cfg.FPS = fps
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that have nothing to clean up.
func mustLoadConfig() config.Config {
	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	return cfg
}

func newEngine(cfg config.Config) *physics.Engine {
	opts := []physics.Option{physics.WithTaunts(cfg.Taunts)}
	if seed != 0 {
		opts = append(opts, physics.WithSeed(seed))
	}
	return physics.NewEngine(cfg.Tuning, opts...)
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the feed (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var logOut io.Writer
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("unable to open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}

		if err := tui.Run(cmd.Context(), cfg, newEngine(cfg), logOut); err != nil {
			return fmt.Errorf("TUI failed: %w", err)
		}
		return nil
	},
}

//nolint:gochecknoglobals // Cobra flag bindings for simulate.
var (
	simPull    float64
	simSteps   int
	simHold    time.Duration
	simMulti   bool
	jsonOutput bool
)

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one scripted pull without a terminal UI and print every frame",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		runner := sim.Runner{FPS: cfg.FPS}
		res, err := runner.Run(newEngine(cfg), sim.Script{Pull: simPull, Steps: simSteps, Hold: simHold, Multi: simMulti})
		if err != nil {
			logrus.Fatal(err)
		}
		if err := printResult(cmd.OutOrStdout(), res, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

// printResult writes JSON lines (one frame each, then a summary) or a table.
func printResult(w io.Writer, res sim.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, f := range res.Frames {
			if err := enc.Encode(f); err != nil {
				return err
			}
		}
		return enc.Encode(struct {
			Frames    int      `json:"frames"`
			Peak      float64  `json:"peak"`
			Refreshed bool     `json:"refreshed"`
			Taunts    []string `json:"taunts,omitempty"`
			Truncated bool     `json:"truncated,omitempty"`
		}{len(res.Frames), res.Peak, res.Refreshed, res.Taunts, res.Truncated})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tPHASE\tDISPLACEMENT\tANGLE\tOPACITY\tMESSAGE")
	for i, f := range res.Frames {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.0f\t%.2f\t%s\n", i, f.Phase, f.Displacement, f.SpinnerAngle, f.Opacity, f.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\npeak %.1f, refreshed: %t, frames: %d\n", res.Peak, res.Refreshed, len(res.Frames))
	return nil
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var tauntsCmd = &cobra.Command{
	Use:   "taunts",
	Short: "List the configured taunts",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if len(cfg.Taunts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No taunts configured. The feed suffers in silence.")
			return
		}
		for _, t := range cfg.Taunts {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", t)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		out, err := config.Marshal(cfg)
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to --config",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Write(configFile, config.Default()); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", configFile)
	},
}
