package theme

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// ErrNamesExhausted is returned when no unused adjective_noun pair was found.
var ErrNamesExhausted = errors.New("no unused theme name left")

const maxNameAttempts = 1000

var standardAdjectives = []string{
	"cosmic", "serene", "vibrant", "minimal", "bold", "elegant", "modern", "classic",
	"dynamic", "subtle", "refined", "crisp", "warm", "cool", "fresh", "clean",
	"sharp", "smooth", "bright", "deep", "light", "rich", "soft", "strong",
	"pure", "clear", "radiant", "muted", "vivid", "gentle", "sleek", "cozy",
	"ethereal", "mystic", "zen", "urban", "rustic", "electric", "pastel", "neon",
	"aurora", "twilight", "frost", "ember", "jade", "sapphire", "ruby", "amber",
}

var standardNouns = []string{
	"wave", "sky", "forest", "ocean", "mountain", "valley", "desert", "river",
	"lake", "field", "garden", "meadow", "storm", "breeze", "mist", "frost",
	"flame", "spark", "glow", "shadow", "light", "dawn", "dusk", "night",
	"day", "season", "horizon", "vista", "peak", "flow", "cascade", "canyon",
	"oasis", "glacier", "nebula", "cosmos", "prism", "crystal", "ember", "aurora",
	"echo", "whisper", "dream", "voyage", "odyssey", "zen", "pulse", "rhythm",
}

var retroAdjectives = []string{
	"neon", "cyber", "retro", "vintage", "classic", "terminal", "matrix", "synthwave",
	"vaporwave", "outrun", "arcade", "pixel", "digital", "analog", "chrome", "laser",
	"hologram", "circuit", "grid", "vector", "mainframe", "quantum", "atomic", "cosmic",
	"stellar", "binary", "monochrome", "phosphor", "cathode", "vacuum", "transistor", "silicon",
	"electric", "magnetic", "plasma", "photon", "neutron", "fusion", "console", "command",
	"system", "kernel", "daemon", "process",
}

var retroNouns = []string{
	"terminal", "console", "system", "grid", "wave", "pulse", "beam", "drive",
	"core", "matrix", "nexus", "portal", "gateway", "interface", "station", "deck",
	"hub", "node", "cluster", "array", "circuit", "module", "unit", "engine",
	"reactor", "chamber", "sphere", "cube", "prism", "crystal", "void", "dimension",
	"reality", "simulation", "cyberspace", "mainframe", "database", "network", "protocol", "stream",
	"buffer", "cache", "memory", "processor", "compiler", "runtime",
}

// Names draws adjective_noun theme names that are unused in this run and
// do not exist as a directory under ThemesDir.
type Names struct {
	ThemesDir  string
	adjectives []string
	nouns      []string
	rng        *rand.Rand
	used       map[string]bool
}

// NewNames returns a generator over the standard word lists.
func NewNames(rng *rand.Rand, themesDir string) *Names {
	return newNames(rng, themesDir, standardAdjectives, standardNouns)
}

// NewRetroNames returns a generator over the retro word lists.
func NewRetroNames(rng *rand.Rand, themesDir string) *Names {
	return newNames(rng, themesDir, retroAdjectives, retroNouns)
}

func newNames(rng *rand.Rand, themesDir string, adjectives, nouns []string) *Names {
	return &Names{
		ThemesDir:  themesDir,
		adjectives: adjectives,
		nouns:      nouns,
		rng:        rng,
		used:       make(map[string]bool),
	}
}

// Next returns a fresh name and marks it used.
func (n *Names) Next() (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := n.adjectives[n.rng.IntN(len(n.adjectives))] + "_" + n.nouns[n.rng.IntN(len(n.nouns))]
		if n.used[name] || n.exists(name) {
			continue
		}
		n.used[name] = true
		return name, nil
	}
	return "", ErrNamesExhausted
}

func (n *Names) exists(name string) bool {
	if n.ThemesDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(n.ThemesDir, name))
	return err == nil
}
