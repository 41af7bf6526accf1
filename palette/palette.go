// Package palette derives theme color palettes from random HSL draws.
package palette

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Harmony names how secondary and accent hues relate to the base hue.
type Harmony string

const (
	Complementary      Harmony = "complementary"
	Triadic            Harmony = "triadic"
	Analogous          Harmony = "analogous"
	Monochromatic      Harmony = "monochromatic"
	SplitComplementary Harmony = "split_complementary"
)

// Harmonies lists every harmony in draw order.
var Harmonies = []Harmony{Complementary, Triadic, Analogous, Monochromatic, SplitComplementary}

// Palette is the color set interpolated into a theme's CSS custom properties.
// Glow and Name are only set on the fixed retro palettes.
type Palette struct {
	Primary    string  `json:"primary"`
	Secondary  string  `json:"secondary"`
	Accent     string  `json:"accent"`
	Background string  `json:"background"`
	Text       string  `json:"text"`
	Glow       string  `json:"glow,omitempty"`
	IsDark     bool    `json:"is_dark"`
	Type       Harmony `json:"palette_type,omitempty"`
	Name       string  `json:"name,omitempty"`
}

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// Valid reports whether s is a lowercase #rrggbb color.
func Valid(s string) bool {
	return hexPattern.MatchString(s)
}

// Generate draws a palette with a random harmony.
func Generate(rng *rand.Rand) Palette {
	return GenerateHarmony(rng, Harmonies[rng.IntN(len(Harmonies))])
}

// GenerateHarmony draws base hue, saturation and lightness and derives the
// other colors for the given harmony. Background and text lightness come
// from disjoint ranges picked by the dark/light draw; contrast is not checked.
func GenerateHarmony(rng *rand.Rand, h Harmony) Palette {
	hue := rng.Float64()
	sat := uniform(rng, 0.3, 0.9)
	light := uniform(rng, 0.3, 0.7)
	isDark := rng.Float64() > 0.5

	var bgLight, textLight float64
	if isDark {
		bgLight = uniform(rng, 0.05, 0.15)
		textLight = uniform(rng, 0.85, 0.95)
	} else {
		bgLight = uniform(rng, 0.92, 0.98)
		textLight = uniform(rng, 0.05, 0.15)
	}

	primary := hsl(hue, sat, light)
	var secondary, accent string

	switch h {
	case Triadic:
		secondary = hsl(hue+0.333, sat, light)
		accent = hsl(hue+0.667, sat, light)
	case Analogous:
		secondary = hsl(hue+0.08, sat*0.9, light)
		accent = hsl(hue-0.08, sat, light*0.9)
	case Monochromatic:
		secondary = hsl(hue, sat*0.8, light*0.7)
		accent = hsl(hue, sat*0.6, math.Min(light*1.2, 1))
	case SplitComplementary:
		secondary = hsl(hue+0.42, sat*0.8, light)
		accent = hsl(hue+0.58, sat*0.8, light)
	default:
		h = Complementary
		secondary = hsl(hue+0.5, sat*0.8, light)
		accent = hsl(hue, sat*0.6, light*0.8)
	}

	return Palette{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Background: hsl(hue, 0.1, bgLight),
		Text:       hsl(0, 0, textLight),
		IsDark:     isDark,
		Type:       h,
	}
}

// Colors returns the palette's hex values in CSS declaration order.
func (p Palette) Colors() []string {
	out := []string{p.Primary, p.Secondary, p.Accent, p.Background, p.Text}
	if p.Glow != "" {
		out = append(out, p.Glow)
	}
	return out
}

// Scheme is "Dark" or "Light".
func (p Palette) Scheme() string {
	if p.IsDark {
		return "Dark"
	}
	return "Light"
}

// HexToRGB decodes #rgb or #rrggbb (any case).
func HexToRGB(hex string) (r, g, b uint8, err error) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// RGBToHex encodes lowercase #rrggbb.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Luminance is the perceived brightness in [0,1] using Rec. 601 weights.
func Luminance(hex string) (float64, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return 0, err
	}
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, nil
}

// IsDarkColor reports whether hex reads as a dark background.
func IsDarkColor(hex string) bool {
	l, err := Luminance(hex)
	if err != nil {
		return false
	}
	return l < 0.5
}

// normalizeHex drops an alpha suffix so #rrggbbaa still decodes.
func normalizeHex(hex string) string {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	switch len(hex) {
	case 9:
		return hex[:7]
	case 5:
		return hex[:4]
	}
	return hex
}

// hsl converts hue (in turns, wrapped into [0,1)), saturation and lightness.
func hsl(h, s, l float64) string {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	c := colorful.Hsl(h*360, clamp01(s), clamp01(l)).Clamped()
	return c.Hex()
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
