package stylesheet

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Effect is a retro background overlay.
type Effect string

const (
	EffectScanlines Effect = "scanlines"
	EffectGrid      Effect = "grid"
	EffectDots      Effect = "dots"
	EffectCRT       Effect = "crt"
	EffectTerminal  Effect = "terminal"
	EffectNone      Effect = "none"
)

var effects = []Effect{EffectScanlines, EffectGrid, EffectDots, EffectCRT, EffectTerminal, EffectNone}

// Effects returns every retro effect.
func Effects() []Effect {
	return append([]Effect(nil), effects...)
}

func (e Effect) Valid() bool {
	for _, known := range effects {
		if e == known {
			return true
		}
	}
	return false
}

// EffectFor forces the terminal effect for terminal-sounding theme names.
func EffectFor(name string, drawn Effect) Effect {
	for _, word := range []string{"terminal", "console", "command"} {
		if strings.Contains(name, word) {
			return EffectTerminal
		}
	}
	return drawn
}

// Suggest returns the known layout closest to input, or "" when nothing is
// within a third of the input's length.
func Suggest(input string) string {
	type scored struct {
		id   string
		dist int
	}

	var candidates []scored
	for _, id := range layoutOrder {
		candidates = append(candidates, scored{id, levenshtein.ComputeDistance(strings.ToLower(input), id)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	best := candidates[0]
	if best.dist > len(input)/3+1 {
		return ""
	}
	return best.id
}
