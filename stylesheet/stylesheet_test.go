package stylesheet

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/fonts"
	"themesmith/palette"
)

var testPalette = palette.Palette{
	Primary:    "#ff0000",
	Secondary:  "#00ff00",
	Accent:     "#0000ff",
	Background: "#000000",
	Text:       "#eeeeee",
	IsDark:     true,
	Type:       palette.Complementary,
}

var testSizes = fonts.Sizes{Base: 16, H1: 1.95, H2: 1.56, H3: 1.25, LineHeight: 1.6}

func TestEveryLayoutAssembles(t *testing.T) {
	require.Len(t, Layouts(), 24)
	require.Len(t, ClassicLayouts(), 15)

	for _, id := range Layouts() {
		t.Run(id, func(t *testing.T) {
			css, err := Assemble(id, testPalette, testSizes)
			require.NoError(t, err)

			assert.Contains(t, css, "/* Layout: "+id+" */")
			assert.Contains(t, css, "--color-primary: #ff0000;")
			assert.Contains(t, css, "--font-size-base: 16px;")
			assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"), "braces balanced")
			assert.NotContains(t, css, "{{")
			assert.NotContains(t, css, "<no value>")
		})
	}
}

func TestTerminalLayout(t *testing.T) {
	css, err := Assemble("terminal", testPalette, testSizes)
	require.NoError(t, err)

	assert.Contains(t, css, "background-color: var(--color-bg);")
	assert.Contains(t, css, "--color-bg: #000000;")
	// alpha suffixes are interpolated verbatim and left for the post-processor
	assert.Contains(t, css, "#ff000011")
	assert.Contains(t, css, `content: "$ cat output.log\A";`)
}

func TestAssembleUnknownLayout(t *testing.T) {
	_, err := Assemble("holographic", testPalette, testSizes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLayout))
}

func TestAssembleRetro(t *testing.T) {
	p, ok := palette.RetroByName("amber_crt")
	require.True(t, ok)

	tests := []struct {
		name     string
		effect   Effect
		contains []string
		excludes []string
	}{
		{"neon_wave", EffectScanlines, []string{"rgba(255, 255, 255, 0.03) 2px", "text-shadow: 0 0 5px var(--color-glow);"}, []string{"@keyframes blink"}},
		{"laser_grid", EffectGrid, []string{"background-size: 20px 20px;"}, []string{"html::before"}},
		{"pixel_core", EffectDots, []string{"radial-gradient(circle, #ff950033 1px"}, nil},
		{"vacuum_tube", EffectCRT, []string{"@keyframes flicker"}, nil},
		{"binary_void", EffectTerminal, []string{"@keyframes blink", `content: "$ ";`}, nil},
		{"terminal_hub", EffectNone, []string{"@keyframes blink"}, []string{"html::before"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.effect), func(t *testing.T) {
			css, err := AssembleRetro(tt.name, p, tt.effect)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(css, "/* Retro Theme: "+tt.name+" */"))
			assert.Contains(t, css, "--color-glow: #ff950033;")
			assert.Contains(t, css, "min-width: 1200px;")
			assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"))
			for _, s := range tt.contains {
				assert.Contains(t, css, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, css, s)
			}
		})
	}

	_, err := AssembleRetro("x", p, Effect("sparkles"))
	assert.Error(t, err)
}

func TestEffectFor(t *testing.T) {
	assert.Equal(t, EffectTerminal, EffectFor("console_deck", EffectGrid))
	assert.Equal(t, EffectTerminal, EffectFor("command_core", EffectNone))
	assert.Equal(t, EffectDots, EffectFor("plasma_void", EffectDots))
	assert.Len(t, Effects(), 6)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "terminal", Suggest("termnal"))
	assert.Equal(t, "minimal_grid", Suggest("minimal-grid"))
	assert.Equal(t, "", Suggest("zzzzzzzzzzzz"))
}
