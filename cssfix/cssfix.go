// Package cssfix rewrites generated CSS into a form validators accept.
//
// Every rule is an independent regular-expression substitution; there is no
// CSS parser. Text that merely looks like a color (inside a comment, a string
// or an id selector such as #face) is rewritten too.
package cssfix

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

type rule struct {
	name    string
	pattern *regexp.Regexp
	replace func(string, []string) string
}

func literal(s string) func(string, []string) string {
	return func(string, []string) string { return s }
}

var rules = []rule{
	{
		name:    "hex-alpha",
		pattern: regexp.MustCompile(`#([0-9a-fA-F]{8}|[0-9a-fA-F]{4})\b`),
		replace: func(m string, _ []string) string { return hexToRGBA(m) },
	},
	{
		name:    "placeholder-alpha",
		pattern: regexp.MustCompile(`\{[^}]+\}([0-9A-Fa-f]{2})\b`),
		replace: func(_ string, g []string) string {
			a, _ := strconv.ParseUint(g[1], 16, 8)
			return fmt.Sprintf("rgba(0, 0, 0, %.2f)", float64(a)/255)
		},
	},
	{"font-smoothing", regexp.MustCompile(`-webkit-font-smoothing:\s*antialiased;`), literal("-webkit-font-smoothing: antialiased;")},
	{"osx-font-smoothing", regexp.MustCompile(`-moz-osx-font-smoothing:\s*grayscale;`), literal("-moz-osx-font-smoothing: grayscale;")},
	{"word-wrap", regexp.MustCompile(`word-wrap:\s*break-word;`), literal("overflow-wrap: break-word;")},
	{"webkit-background-clip", regexp.MustCompile(`-webkit-background-clip:\s*text;`), literal("-webkit-background-clip: text;")},
	{"text-fill-color", regexp.MustCompile(`-webkit-text-fill-color:\s*transparent;`), literal("-webkit-text-fill-color: transparent;")},
	{
		name:    "import-url",
		pattern: regexp.MustCompile(`@import\s+url\(['"]([^'")]+)['"]\)([^;]*);`),
		replace: func(_ string, g []string) string { return `@import url("` + g[1] + `")` + g[2] + ";" },
	},
	{"font-text", regexp.MustCompile(`font-family:\s*(?:'text'|"text"|text),\s*sans-serif;`), literal("font-family: text, sans-serif;")},
	{"font-heading", regexp.MustCompile(`font-family:\s*(?:'heading'|"heading"|heading),\s*serif;`), literal("font-family: heading, serif;")},
	{"font-code", regexp.MustCompile(`font-family:\s*(?:'code'|"code"|code),\s*monospace;`), literal("font-family: code, monospace;")},
	{"font-handnotes", regexp.MustCompile(`font-family:\s*(?:'handnotes'|"handnotes"|handnotes),\s*cursive;`), literal("font-family: handnotes, cursive;")},
}

var (
	bareBackgroundClip = regexp.MustCompile(`background-clip:\s*text;`)
	textShadowBreak    = regexp.MustCompile(`text-shadow:\s*\n\s*`)
	boxShadowBreak     = regexp.MustCompile(`box-shadow:\s*\n\s*`)
)

// Fix applies every substitution in order. Fix(Fix(x)) == Fix(x).
func Fix(css string) string {
	for _, r := range rules {
		css = replaceAll(r.pattern, css, r.replace)
	}
	css = dropBackgroundClip(css)
	css = joinBackgrounds(css)
	css = textShadowBreak.ReplaceAllString(css, "text-shadow: ")
	css = boxShadowBreak.ReplaceAllString(css, "box-shadow: ")
	return css
}

// FixFile rewrites path in place, only when Fix changed something.
func FixFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	fixed := Fix(string(data))
	if fixed == string(data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// FixTheme runs FixFile over dir/style.css and every dir/*-override.css.
// It returns the base names of the files that changed.
func FixTheme(dir string) ([]string, error) {
	overrides, err := filepath.Glob(filepath.Join(dir, "*-override.css"))
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, path := range append([]string{filepath.Join(dir, "style.css")}, overrides...) {
		ok, err := FixFile(path)
		if err != nil {
			return changed, err
		}
		if ok {
			changed = append(changed, filepath.Base(path))
		}
	}
	return changed, nil
}

// dropBackgroundClip removes "background-clip: text;" unless it is the tail
// of a prefixed or longer property name, until none is left.
func dropBackgroundClip(css string) string {
	for {
		next := dropBackgroundClipOnce(css)
		if next == css {
			return css
		}
		css = next
	}
}

// RE2 has no lookbehind, so the preceding byte is checked by hand and
// never consumed.
func dropBackgroundClipOnce(css string) string {
	var b strings.Builder
	last := 0
	for _, loc := range bareBackgroundClip.FindAllStringIndex(css, -1) {
		if loc[0] > 0 && isNameByte(css[loc[0]-1]) {
			continue
		}
		b.WriteString(css[last:loc[0]])
		last = loc[1]
	}
	if last == 0 {
		return css
	}
	b.WriteString(css[last:])
	return b.String()
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func replaceAll(re *regexp.Regexp, s string, fn func(string, []string) string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		return fn(m, re.FindStringSubmatch(m))
	})
}

// hexToRGBA converts #RRGGBBAA or #RGBA; anything else is returned unchanged.
func hexToRGBA(hex string) string {
	digits := hex[1:]
	if len(digits) == 4 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2], digits[3], digits[3]})
	}
	if len(digits) != 8 {
		return hex
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return hex
	}
	r, g, b, a := v>>24&0xff, v>>16&0xff, v>>8&0xff, v&0xff
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, float64(a)/255)
}

// joinBackgrounds collapses background/background-image declarations that
// span several lines onto the first line, up to the terminating semicolon.
func joinBackgrounds(css string) string {
	lines := strings.Split(css, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !opensBackground(line) {
			out = append(out, line)
			continue
		}

		joined := strings.TrimRight(line, " \t")
		for i+1 < len(lines) && !strings.HasSuffix(strings.TrimSpace(joined), ";") {
			i++
			next := strings.TrimSpace(lines[i])
			if next == "" {
				continue
			}
			joined += " " + next
		}
		out = append(out, joined)
	}
	return strings.Join(out, "\n")
}

func opensBackground(line string) bool {
	if !strings.Contains(line, "background:") && !strings.Contains(line, "background-image:") {
		return false
	}
	trimmed := strings.TrimSpace(line)
	return !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "{") && !strings.HasSuffix(trimmed, "}")
}
