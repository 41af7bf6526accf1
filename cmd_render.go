package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"themesmith/config"
	"themesmith/models"
	"themesmith/parser"
	"themesmith/render"
	"themesmith/theme"
)

var rendererMode string

var screenshotsCmd = &cobra.Command{
	Use:   "screenshots",
	Short: "Capture a screenshot of every theme",
	Long: "Render screenshots/<theme>.png for every theme with a style.css. Renderers are tried in order: " +
		"chromedp, the configured headless browsers, then the schematic drawing.",
	RunE: runScreenshots,
}

var previewsCmd = &cobra.Command{
	Use:   "previews",
	Short: "Draw schematic previews of every theme",
	Long:  "Draw screenshots/<theme>.png from the colors and layout parsed out of each style.css. No browser is used.",
	RunE:  runPreviews,
}

var retroPreviewsCmd = &cobra.Command{
	Use:   "retro-previews",
	Short: "Draw previews of the retro themes",
	Long:  "Draw schematic previews for every theme listed in retro_themes_metadata.json, with its effect.",
	RunE:  runRetroPreviews,
}

func init() {
	screenshotsCmd.Flags().StringVar(&rendererMode, "renderer", render.ModeAuto,
		fmt.Sprintf("Renderer selection: %s, %s or %s", render.ModeAuto, render.ModeBrowser, render.ModeSchematic))
	rootCmd.AddCommand(screenshotsCmd)
	rootCmd.AddCommand(previewsCmd)
	rootCmd.AddCommand(retroPreviewsCmd)
}

func newPreviewer(cfg config.Config, chain *render.Chain) *render.Previewer {
	return &render.Previewer{
		Chain:          chain,
		ScreenshotsDir: cfg.ScreenshotsDir,
		Width:          cfg.PreviewWidth,
		Height:         cfg.PreviewHeight,
		Fallback:       render.NewSchematic(),
	}
}

func runScreenshots(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	chain, closeChain, err := render.NewDefaultChain(cfg, rendererMode)
	if err != nil {
		return err
	}
	defer closeChain()

	ctx, cancel := signalContext()
	defer cancel()

	available := chain.Available(ctx)
	if len(available) == 0 {
		return fmt.Errorf("no renderer available for mode %q", rendererMode)
	}
	log.Printf("[Screenshots] Renderers: %v", available)

	return previewAll(ctx, cmd, cfg, newPreviewer(cfg, chain))
}

func runPreviews(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	return previewAll(ctx, cmd, cfg, newPreviewer(cfg, render.NewChain(render.NewSchematic())))
}

func previewAll(ctx context.Context, cmd *cobra.Command, cfg config.Config, p *render.Previewer) error {
	dirs, err := parser.ScanValid(cfg.ThemesDir)
	if err != nil {
		return fmt.Errorf("scan themes: %w", err)
	}
	log.Printf("[Screenshots] Found %d themes", len(dirs))

	var report models.BatchReport
	for i, d := range dirs {
		if ctx.Err() != nil {
			break
		}
		used, err := p.PreviewTheme(ctx, d.Path, "")
		report.Add(d.Name, err)
		if err != nil {
			log.Printf("[Screenshots] ✗ [%d/%d] %s: %v", i+1, len(dirs), d.Name, err)
			continue
		}
		log.Printf("[Screenshots] ✓ [%d/%d] %s (%s)", i+1, len(dirs), d.Name, used)
	}

	printReport(cmd, "Screenshots", report)
	fmt.Fprintf(cmd.OutOrStdout(), "Screenshots saved to: %s\n", cfg.ScreenshotsDir)
	return ctx.Err()
}

func runRetroPreviews(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	records, err := theme.LoadRetroMetadata(filepath.Join(cfg.ThemesDir, models.RetroMetadataFile))
	if err != nil {
		return fmt.Errorf("load retro metadata: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	p := newPreviewer(cfg, render.NewChain(render.NewSchematic()))
	var report models.BatchReport
	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		_, err := p.PreviewTheme(ctx, filepath.Join(cfg.ThemesDir, rec.Name), rec.Effect)
		report.Add(rec.Name, err)
		if err != nil {
			log.Printf("[RetroPreviews] ✗ %s: %v", rec.Name, err)
			continue
		}
		log.Printf("[RetroPreviews] ✓ %s (%s)", rec.Name, rec.Effect)
	}

	printReport(cmd, "Retro previews", report)
	return ctx.Err()
}
