// Package fonts holds the font catalog, the on-disk lookup table used to
// locate font files, and typographic scale generation.
package fonts

import (
	"math"
	"math/rand/v2"
	"strings"
)

// Font is one font identifier with its license label and category.
type Font struct {
	ID       string `json:"id"`
	License  string `json:"license"`
	Category string `json:"category"`
}

// DisplayName turns Abril_Fatface into "Abril Fatface".
func (f Font) DisplayName() string {
	return strings.ReplaceAll(f.ID, "_", " ")
}

// Combination is the heading/body/code assignment for one theme.
type Combination struct {
	Heading Font `json:"heading"`
	Body    Font `json:"body"`
	Code    Font `json:"code"`
}

var (
	abrilFatface = Font{"Abril_Fatface", "OFL", "display"}
	lato         = Font{"Lato", "OFL", "sans-serif"}
	consolaMono  = Font{"consola-mono", "OFL", "monospace"}
	oxygen       = Font{"oxygen", "OFL", "sans-serif"}
	hack         = Font{"hack", "MIT", "monospace"}
	robotoSlab   = Font{"roboto-slab", "Apache", "serif"}
	intelOneMono = Font{"intelone-mono", "OFL", "monospace"}
	merriweather = Font{"Merriweather", "OFL", "serif"}
	higherJump   = Font{"higher-jump", "Free", "display"}
	pixelon      = Font{"pixelon", "Free", "display"}
	repetition   = Font{"repetition-scrolling", "Free", "display"}
	zaiMignon    = Font{"zai-aeg-mignon-typewriter-1924", "Free", "display"}
	khand        = Font{"khand", "Free", "handwriting"}
)

// Handnotes is the font copied into every standard theme's handnotes slot.
var Handnotes = khand

// RetroHandnotes fills the handnotes slot of retro themes.
var RetroHandnotes = hack

var combinations = []Combination{
	{abrilFatface, lato, consolaMono},
	{oxygen, lato, hack},
	{robotoSlab, oxygen, intelOneMono},
	{merriweather, oxygen, hack},
	{higherJump, lato, consolaMono},
	{pixelon, oxygen, hack},
	{repetition, merriweather, intelOneMono},
	{zaiMignon, robotoSlab, hack},
	{khand, lato, consolaMono},
	{abrilFatface, merriweather, hack},
	{robotoSlab, lato, consolaMono},
	{oxygen, merriweather, intelOneMono},
	{merriweather, robotoSlab, hack},
	{higherJump, oxygen, intelOneMono},
	{pixelon, robotoSlab, consolaMono},
}

var retroCombinations = []Combination{
	{hack, hack, hack},
	{consolaMono, consolaMono, consolaMono},
	{intelOneMono, intelOneMono, intelOneMono},
	{hack, intelOneMono, consolaMono},
	{pixelon, hack, consolaMono},
	{repetition, hack, hack},
	{zaiMignon, consolaMono, hack},
	{higherJump, hack, intelOneMono},
}

// Combinations returns the standard font combinations.
func Combinations() []Combination {
	return append([]Combination(nil), combinations...)
}

// RetroCombinations returns the monospace-heavy retro combinations.
func RetroCombinations() []Combination {
	return append([]Combination(nil), retroCombinations...)
}

// Sizes is the typographic scale written into :root.
type Sizes struct {
	Base       int     `json:"base"`
	H1         float64 `json:"h1"`
	H2         float64 `json:"h2"`
	H3         float64 `json:"h3"`
	LineHeight float64 `json:"line_height"`
}

var (
	baseSizes   = []int{14, 15, 16, 17, 18}
	scaleRatios = []float64{1.125, 1.2, 1.25, 1.333, 1.414, 1.5, 1.618}
)

// RandomSizes picks a base size and a modular scale ratio.
func RandomSizes(rng *rand.Rand) Sizes {
	base := baseSizes[rng.IntN(len(baseSizes))]
	scale := scaleRatios[rng.IntN(len(scaleRatios))]
	return Sizes{
		Base:       base,
		H1:         round2(math.Pow(scale, 3)),
		H2:         round2(math.Pow(scale, 2)),
		H3:         round2(scale),
		LineHeight: round2(1.4 + rng.Float64()*0.4),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
