package palette

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesValidHex(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := map[Harmony]bool{}

	for i := 0; i < 500; i++ {
		p := Generate(rng)
		seen[p.Type] = true
		for _, c := range p.Colors() {
			require.Truef(t, Valid(c), "palette %d produced %q", i, c)
		}
		assert.Empty(t, p.Glow)
	}

	for _, h := range Harmonies {
		assert.Truef(t, seen[h], "harmony %s never drawn", h)
	}
}

func TestGenerateHarmonyDarkLightRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	for _, h := range Harmonies {
		for i := 0; i < 50; i++ {
			p := GenerateHarmony(rng, h)
			assert.Equal(t, h, p.Type)

			bg, err := Luminance(p.Background)
			require.NoError(t, err)
			text, err := Luminance(p.Text)
			require.NoError(t, err)

			if p.IsDark {
				assert.Less(t, bg, 0.2, "dark background %s", p.Background)
				assert.Greater(t, text, 0.8, "dark text %s", p.Text)
			} else {
				assert.Greater(t, bg, 0.85, "light background %s", p.Background)
				assert.Less(t, text, 0.2, "light text %s", p.Text)
			}
		}
	}
}

func TestTextIsGray(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		r, g, b, err := HexToRGB(Generate(rng).Text)
		require.NoError(t, err)
		assert.Equal(t, r, g)
		assert.Equal(t, g, b)
	}
}

func TestHexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 200; i++ {
		for _, c := range Generate(rng).Colors() {
			r, g, b, err := HexToRGB(c)
			require.NoError(t, err)
			assert.Equal(t, c, RGBToHex(r, g, b))
		}
	}

	r, g, b, err := HexToRGB("#FFAA00")
	require.NoError(t, err)
	assert.Equal(t, "#ffaa00", RGBToHex(r, g, b))
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{in: "#000000"},
		{in: "#ff0000", r: 255},
		{in: "#0f0", g: 255},
		{in: "#00ff0033", g: 255},
		{in: "12ab34", r: 0x12, g: 0xab, b: 0x34},
		{in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, err := HexToRGB(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}

func TestHueWrapsNegativeOffsets(t *testing.T) {
	// analogous subtracts 0.08 from the base hue; small hues must still wrap
	for seed := uint64(0); seed < 200; seed++ {
		p := GenerateHarmony(rand.New(rand.NewPCG(seed, 0)), Analogous)
		assert.True(t, Valid(p.Accent), p.Accent)
	}
	assert.Equal(t, hsl(0.95, 1, 0.5), hsl(-0.05, 1, 0.5))
}

func TestRetroPalettes(t *testing.T) {
	retro := Retro()
	require.Len(t, retro, 10)

	for _, p := range retro {
		assert.True(t, p.IsDark)
		assert.Len(t, p.Glow, 9, p.Name)
		for _, c := range []string{p.Primary, p.Secondary, p.Accent, p.Background, p.Text} {
			assert.True(t, Valid(c), "%s: %s", p.Name, c)
		}
	}

	p, ok := RetroByName("matrix")
	require.True(t, ok)
	assert.Equal(t, "#00ff41", p.Primary)

	_, ok = RetroByName("nope")
	assert.False(t, ok)
}

func TestSwatchesAndPlain(t *testing.T) {
	p, _ := RetroByName("synthwave")

	out := Swatches(p)
	assert.Contains(t, out, "synthwave")
	assert.Contains(t, out, "#ff00ff")

	plain := Plain(p)
	assert.Equal(t, 6, len(strings.Split(plain, "\n")))
	assert.Contains(t, plain, "glow: #ff00ff33")
}
