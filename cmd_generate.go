package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themesmith/config"
	"themesmith/downloader"
	"themesmith/render"
	"themesmith/stylesheet"
	"themesmith/theme"
)

var (
	count      int
	layout     string
	cleanRetro bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate standard themes",
	Long:  "Generate themes with harmony palettes, font pairings and random layouts, preview each one and write themes_metadata.json.",
	RunE:  runGenerate,
}

var retroCmd = &cobra.Command{
	Use:   "retro",
	Short: "Generate retro themes",
	Long:  "Generate retro themes from the fixed CRT palettes with monospace fonts and a visual effect, then write retro_themes_metadata.json.",
	RunE:  runRetro,
}

var webfontsCmd = &cobra.Command{
	Use:   "webfonts",
	Short: "Generate themes with downloaded Google Fonts",
	Long:  "Generate themes whose fonts are downloaded from Google Fonts into the font cache and copied into each theme.",
	RunE:  runWebfonts,
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, retroCmd, webfontsCmd} {
		c.Flags().IntVar(&count, "count", 0, "Number of themes to attempt (default: config count)")
		rootCmd.AddCommand(c)
	}
	generateCmd.Flags().StringVar(&layout, "layout", "", "Force one layout for every theme")
	retroCmd.Flags().BoolVar(&cleanRetro, "clean", false, "Remove every non-original theme directory first")
}

func newGenerator(cmd *cobra.Command, cfg config.Config) *theme.Generator {
	n := cfg.Count
	if cmd.Flags().Changed("count") {
		n = count
	}
	return &theme.Generator{
		Materializer: theme.NewMaterializer(cfg),
		Rng:          newRng(cfg),
		Count:        n,
		Workers:      cfg.Workers,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if layout != "" && !stylesheet.IsLayout(layout) {
		if s := stylesheet.Suggest(layout); s != "" {
			return fmt.Errorf("unknown layout %q, did you mean %q?", layout, s)
		}
		return fmt.Errorf("unknown layout %q", layout)
	}

	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	gen := newGenerator(cmd, cfg)
	gen.Layout = layout
	gen.Previewer = &render.Previewer{
		Chain:          render.NewChain(render.NewSchematic()),
		ScreenshotsDir: cfg.ScreenshotsDir,
		Width:          cfg.PreviewWidth,
		Height:         cfg.PreviewHeight,
	}

	report, err := gen.RunStandard(ctx)
	printReport(cmd, "Themes", report)
	return err
}

func runRetro(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	report, err := newGenerator(cmd, cfg).RunRetro(ctx, cleanRetro)
	printReport(cmd, "Retro themes", report)
	return err
}

func runWebfonts(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	gen := newGenerator(cmd, cfg)
	gen.Fetcher = downloader.NewGoogleFonts(cfg)

	report, err := gen.RunWebfont(ctx)
	printReport(cmd, "Webfont themes", report)
	return err
}
