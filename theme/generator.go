package theme

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"themesmith/downloader"
	"themesmith/fonts"
	"themesmith/models"
	"themesmith/palette"
	"themesmith/stylesheet"
)

// OriginalThemes are hand-made themes that RunRetro's clean-up keeps.
var OriginalThemes = []string{"default", "simple", "business", "future", "retrosimple"}

// Previewer renders a screenshot for a freshly created theme directory.
type Previewer interface {
	Preview(ctx context.Context, dir string) error
}

// FontFetcher downloads font families into a local cache.
type FontFetcher interface {
	FetchAll(ctx context.Context, families []fonts.Family) []downloader.Download
}

// Generator runs one batch of theme creation. Every random draw goes
// through Rng so a seed reproduces the batch.
type Generator struct {
	Materializer *Materializer
	Rng          *rand.Rand
	Count        int
	Workers      int

	// Layout forces a layout for standard themes when set.
	Layout string
	// Previewer is optional; preview failures never fail a theme.
	Previewer Previewer
	// Fetcher is required by RunWebfont.
	Fetcher FontFetcher
}

func (g *Generator) metadataPath(name string) string {
	return filepath.Join(g.Materializer.ThemesDir, name)
}

// RunStandard creates Count themes with HSL palettes and catalog fonts,
// previews each one and writes themes_metadata.json.
func (g *Generator) RunStandard(ctx context.Context) (models.BatchReport, error) {
	var report models.BatchReport

	if g.Layout != "" && !stylesheet.IsLayout(g.Layout) {
		return report, fmt.Errorf("%w: %q", stylesheet.ErrUnknownLayout, g.Layout)
	}

	names := NewNames(g.Rng, g.Materializer.ThemesDir)
	combos := fonts.Combinations()
	layouts := stylesheet.Layouts()
	records := []models.ThemeRecord{}

	for i := 0; i < g.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name, err := names.Next()
		if err != nil {
			log.Printf("[Generate] ✗ Stopping after %d themes: %v", i, err)
			break
		}

		spec := Spec{
			Name:    name,
			Kind:    KindStandard,
			Fonts:   combos[g.Rng.IntN(len(combos))],
			Palette: palette.Generate(g.Rng),
			Layout:  layouts[g.Rng.IntN(len(layouts))],
			Sizes:   fonts.RandomSizes(g.Rng),
		}
		if g.Layout != "" {
			spec.Layout = g.Layout
		}

		res, err := g.Materializer.Create(spec)
		report.Add(name, err)
		if err != nil {
			log.Printf("[Generate] ✗ Error creating theme %s: %v", name, err)
			continue
		}

		records = append(records, models.ThemeRecord{Name: name, Layout: spec.Layout, Colors: spec.Palette, Fonts: spec.Fonts})
		log.Printf("[Generate] ✓ Created theme %d/%d: %s (%s)", report.Succeeded, g.Count, name, spec.Layout)

		if g.Previewer != nil {
			if err := g.Previewer.Preview(ctx, res.Dir); err != nil {
				log.Printf("[Generate] ⚠️ No preview for %s: %v", name, err)
			}
		}
	}

	if err := SaveMetadata(g.metadataPath(models.StandardMetadataFile), records); err != nil {
		return report, err
	}
	return report, nil
}

// RunRetro creates Count retro themes and writes retro_themes_metadata.json.
// With clean set, every theme directory except OriginalThemes is removed first.
func (g *Generator) RunRetro(ctx context.Context, clean bool) (models.BatchReport, error) {
	var report models.BatchReport

	if clean {
		removed, err := CleanThemes(g.Materializer.ThemesDir)
		if err != nil {
			return report, err
		}
		log.Printf("[Retro] Removed %d generated themes", len(removed))
	}

	names := NewRetroNames(g.Rng, g.Materializer.ThemesDir)
	palettes := palette.Retro()
	combos := fonts.RetroCombinations()
	effects := stylesheet.Effects()
	records := []models.RetroRecord{}

	for i := 0; i < g.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name, err := names.Next()
		if err != nil {
			log.Printf("[Retro] ✗ Stopping after %d themes: %v", i, err)
			break
		}

		spec := Spec{
			Name:    name,
			Kind:    KindRetro,
			Palette: palettes[g.Rng.IntN(len(palettes))],
			Fonts:   combos[g.Rng.IntN(len(combos))],
		}
		spec.Effect = stylesheet.EffectFor(name, effects[g.Rng.IntN(len(effects))])

		_, err = g.Materializer.Create(spec)
		report.Add(name, err)
		if err != nil {
			log.Printf("[Retro] ✗ Error creating theme %s: %v", name, err)
			continue
		}

		records = append(records, models.RetroRecord{Name: name, Palette: spec.Palette.Name, Effect: string(spec.Effect), Fonts: spec.Fonts})
		log.Printf("[Retro] ✓ Created theme %d/%d: %s (%s, %s)", report.Succeeded, g.Count, name, spec.Palette.Name, spec.Effect)
	}

	if err := SaveMetadata(g.metadataPath(models.RetroMetadataFile), records); err != nil {
		return report, err
	}
	return report, nil
}

// webfontPalettes are the harmonies the webfont batch draws from.
var webfontPalettes = []palette.Harmony{palette.Complementary, palette.Triadic, palette.Analogous}

// RunWebfont draws Count theme specs with Google Fonts families, downloads
// the distinct families, then creates the themes on a pool of Workers.
// Families that failed to download fall back to the font repository.
func (g *Generator) RunWebfont(ctx context.Context) (models.BatchReport, error) {
	var report models.BatchReport
	if g.Fetcher == nil {
		return report, errors.New("webfont generation needs a font fetcher")
	}

	headings := fonts.FamiliesIn("serif", "display", "sans-serif")
	bodies := fonts.FamiliesIn("serif", "sans-serif")
	codes := fonts.FamiliesIn("monospace")
	hands := fonts.FamiliesIn("handwriting")
	layouts := stylesheet.ClassicLayouts()
	names := NewNames(g.Rng, g.Materializer.ThemesDir)

	type drawn struct {
		spec     Spec
		families map[fonts.Slot]fonts.Family
	}

	// rng is not safe for concurrent use, so everything is drawn up front
	var plans []drawn
	wanted := make(map[string]fonts.Family)
	for i := 0; i < g.Count; i++ {
		name, err := names.Next()
		if err != nil {
			log.Printf("[Webfonts] ✗ Stopping after %d themes: %v", i, err)
			break
		}

		fams := map[fonts.Slot]fonts.Family{
			fonts.SlotHeading:   headings[g.Rng.IntN(len(headings))],
			fonts.SlotText:      bodies[g.Rng.IntN(len(bodies))],
			fonts.SlotCode:      codes[g.Rng.IntN(len(codes))],
			fonts.SlotHandnotes: hands[g.Rng.IntN(len(hands))],
		}
		for _, f := range fams {
			wanted[f.Family] = f
		}

		plans = append(plans, drawn{
			spec: Spec{
				Name:   name,
				Kind:   KindWebfont,
				Layout: layouts[g.Rng.IntN(len(layouts))],
				Palette: palette.GenerateHarmony(g.Rng,
					webfontPalettes[g.Rng.IntN(len(webfontPalettes))]),
				Sizes: fonts.RandomSizes(g.Rng),
				Fonts: fonts.Combination{
					Heading: fams[fonts.SlotHeading].Font(),
					Body:    fams[fonts.SlotText].Font(),
					Code:    fams[fonts.SlotCode].Font(),
				},
				Handnotes: fams[fonts.SlotHandnotes].Font(),
			},
			families: fams,
		})
	}

	families := make([]fonts.Family, 0, len(wanted))
	for _, f := range fonts.GoogleFamilies() {
		if _, ok := wanted[f.Family]; ok {
			families = append(families, f)
		}
	}
	log.Printf("[Webfonts] Downloading %d font families", len(families))

	files := make(map[string]map[string]string)
	for _, d := range g.Fetcher.FetchAll(ctx, families) {
		files[d.Family.Family] = d.Files
	}

	var (
		mu      sync.Mutex
		records = make([]*models.ThemeRecord, len(plans))
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.Workers, 1))

	for i, plan := range plans {
		spec := plan.spec
		spec.Sources = make(map[fonts.Slot]string)
		for slot, fam := range plan.families {
			if path := pickWeight(files[fam.Family], slot); path != "" {
				spec.Sources[slot] = path
			}
		}

		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			_, err := g.Materializer.Create(spec)

			mu.Lock()
			defer mu.Unlock()
			report.Add(spec.Name, err)
			if err != nil {
				log.Printf("[Webfonts] ✗ Error creating theme %s: %v", spec.Name, err)
				return nil
			}
			records[i] = &models.ThemeRecord{Name: spec.Name, Layout: spec.Layout, Colors: spec.Palette, Fonts: spec.Fonts}
			log.Printf("[Webfonts] ✓ Created theme %d/%d: %s", report.Succeeded, len(plans), spec.Name)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}

	out := []models.ThemeRecord{}
	for _, r := range records {
		if r != nil {
			out = append(out, *r)
		}
	}
	if err := SaveMetadata(g.metadataPath(models.WebfontMetadataFile), out); err != nil {
		return report, err
	}
	return report, nil
}

// pickWeight prefers bold for headings and regular everywhere else.
func pickWeight(files map[string]string, slot fonts.Slot) string {
	order := []string{"regular", "300", "700"}
	if slot == fonts.SlotHeading {
		order = []string{"700", "regular", "300"}
	}
	for _, w := range order {
		if p := files[w]; p != "" {
			return p
		}
	}
	return ""
}

// CleanThemes removes every directory under themesDir except OriginalThemes,
// screenshots and .git. It returns the removed names.
func CleanThemes(themesDir string) ([]string, error) {
	keep := map[string]bool{"screenshots": true, ".git": true}
	for _, name := range OriginalThemes {
		keep[name] = true
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read themes dir: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() || keep[entry.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(themesDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}
