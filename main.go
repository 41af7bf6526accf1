package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"themesmith/config"
	"themesmith/models"
)

var (
	configPath string
	seed       uint64
	themesDir  string
)

var rootCmd = &cobra.Command{
	Use:   "themesmith",
	Short: "themesmith – Gemtexter HTML theme generator",
	Long: "themesmith generates Gemtexter HTML themes (palettes, font pairings, layouts), " +
		"post-processes their CSS and renders preview screenshots.",
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = config.VersionString()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "Configuration file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed (default: config value, or time based)")
	rootCmd.PersistentFlags().StringVar(&themesDir, "themes-dir", "", "Themes directory (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, applies persistent flag overrides and
// starts the log file. The returned func closes the log.
func setup(cmd *cobra.Command) (config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("themes-dir") {
		if cfg, err = cfg.WithThemesDir(themesDir); err != nil {
			return cfg, nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := config.InitLogger(cfg.LogFile); err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	log.Printf("[Main] themesmith %s, themes dir %s", config.Version, cfg.ThemesDir)
	return cfg, config.CloseLogger, nil
}

// newRng builds the one generator every draw of a run goes through.
func newRng(cfg config.Config) *rand.Rand {
	s := cfg.Seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	log.Printf("[Main] seed %d", s)
	return rand.New(rand.NewPCG(s, s))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// printReport writes the end-of-batch summary every batch command shows.
func printReport(cmd *cobra.Command, what string, r models.BatchReport) {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %d/%d succeeded\n", what, r.Succeeded, r.Attempted)
	if len(r.Failed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Failed: %v\n", r.Failed)
	}
}
