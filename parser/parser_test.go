package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSS = `:root {
    --color-primary: #ff0000;
    --color-secondary: #00ff00;
    --color-accent: #0000ff;
    --color-bg: #101010;
    --color-text: #eeeeee;
    --color-glow: rgba(255, 0, 0, 0.20);
}

/* Layout: sidebar */
body { margin: 0; }
`

func TestExtractColors(t *testing.T) {
	p := ExtractColors(sampleCSS)
	assert.Equal(t, "#ff0000", p.Primary)
	assert.Equal(t, "#00ff00", p.Secondary)
	assert.Equal(t, "#0000ff", p.Accent)
	assert.Equal(t, "#101010", p.Background)
	assert.Equal(t, "#eeeeee", p.Text)
	assert.Equal(t, "rgba(255, 0, 0, 0.20)", p.Glow)
	assert.True(t, p.IsDark)
}

func TestExtractColorsDefaults(t *testing.T) {
	p := ExtractColors("body { color: red; }")
	assert.Equal(t, "#667eea", p.Primary)
	assert.Equal(t, "#ffffff", p.Background)
	assert.False(t, p.IsDark)
	assert.Empty(t, p.Glow)
}

func TestExtractLayout(t *testing.T) {
	assert.Equal(t, "sidebar", ExtractLayout(sampleCSS))
	assert.Equal(t, DefaultLayout, ExtractLayout("/* Retro Theme: x */"))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Cosmic Wave", Humanize("cosmic_wave"))
	assert.Equal(t, "Neon", Humanize("neon"))
}

func TestReadTheme(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "serene_lake")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte(sampleCSS), 0644))

	info, err := ReadTheme(dir)
	require.NoError(t, err)
	assert.Equal(t, "serene_lake", info.Name)
	assert.Equal(t, "Serene Lake", info.Title, "falls back to the humanized name")
	assert.Equal(t, "sidebar", info.Layout)

	html := `<html><head><title>Ignored</title></head><body><div class="header"><h1> Serene Lake Deluxe </h1></div></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.html"), []byte(html), 0644))

	info, err = ReadTheme(dir)
	require.NoError(t, err)
	assert.Equal(t, "Serene Lake Deluxe", info.Title)

	_, err = ReadTheme(t.TempDir())
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zen_peak", "screenshots", ".git", "bold_sky", "empty"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "themes_metadata.json"), []byte("[]"), 0644))
	for _, name := range []string{"zen_peak", "bold_sky"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name, "style.css"), []byte("body{}"), 0644))
	}

	dirs, err := Scan(root)
	require.NoError(t, err)
	var names []string
	for _, d := range dirs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"bold_sky", "empty", "zen_peak"}, names)

	valid, err := ScanValid(root)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	assert.Equal(t, "bold_sky", valid[0].Name)
}
