package cssfix

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/fonts"
	"themesmith/palette"
	"themesmith/stylesheet"
)

var eightDigitHex = regexp.MustCompile(`#[0-9a-fA-F]{8}\b`)

func TestFixRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"8 digit hex", "color: #ff000080;", "color: rgba(255, 0, 0, 0.50);"},
		{"4 digit hex", "color: #0f08;", "color: rgba(0, 255, 0, 0.53);"},
		{"6 digit untouched", "color: #0f0111;", "color: #0f0111;"},
		{"placeholder", "background: {colors['text']}0A;", "background: rgba(0, 0, 0, 0.04);"},
		{"word-wrap", "word-wrap:   break-word;", "overflow-wrap: break-word;"},
		{"smoothing", "-webkit-font-smoothing:antialiased;", "-webkit-font-smoothing: antialiased;"},
		{"bare background-clip", "    background-clip: text;", "    "},
		{"adjacent background-clip", "a{color:red;background-clip: text;background-clip: text;}", "a{color:red;}"},
		{"background-clip at start", "background-clip: text;b{}", "b{}"},
		{"nested background-clip", "background-clip: background-clip: text;text;", ""},
		{"webkit background-clip kept", "    -webkit-background-clip:  text;", "    -webkit-background-clip: text;"},
		{"import quotes", "@import url('https://x/y.css');", `@import url("https://x/y.css");`},
		{"font fallback", "font-family: 'code',   monospace;", "font-family: code, monospace;"},
		{"text-shadow join", "text-shadow: \n        0 0 10px red;", "text-shadow: 0 0 10px red;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fix(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Fix(got), "not a fixed point")
		})
	}
}

func TestJoinBackgrounds(t *testing.T) {
	in := "body {\n    background: \n        radial-gradient(a),\n\n        radial-gradient(b);\n    color: red;\n}"
	want := "body {\n    background: radial-gradient(a), radial-gradient(b);\n    color: red;\n}"
	assert.Equal(t, want, Fix(in))

	// a single-line rule containing background: is not a continuation
	oneLine := ".x { background: red }\n.y { color: blue; }"
	assert.Equal(t, oneLine, Fix(oneLine))
}

func TestFixIsIdempotentOnGeneratedCSS(t *testing.T) {
	p := palette.Palette{Primary: "#ff0000", Secondary: "#00aa00", Accent: "#0000ff", Background: "#000000", Text: "#ffffff", IsDark: true}
	sizes := fonts.Sizes{Base: 16, H1: 2.0, H2: 1.6, H3: 1.25, LineHeight: 1.5}

	for _, id := range stylesheet.Layouts() {
		css, err := stylesheet.Assemble(id, p, sizes)
		require.NoError(t, err)

		once := Fix(css)
		assert.Equal(t, once, Fix(once), "layout %s is not a fixed point", id)
		assert.Empty(t, eightDigitHex.FindAllString(once, -1), "layout %s", id)
	}

	for _, rp := range palette.Retro() {
		for _, e := range stylesheet.Effects() {
			css, err := stylesheet.AssembleRetro("retro_"+string(e), rp, e)
			require.NoError(t, err)
			once := Fix(css)
			assert.Equal(t, once, Fix(once))
			assert.Empty(t, eightDigitHex.FindAllString(once, -1))
		}
	}
}

func TestTerminalEndToEnd(t *testing.T) {
	p := palette.Palette{Primary: "#ff0000", Secondary: "#00ff00", Accent: "#0000ff", Background: "#000000", Text: "#cccccc", IsDark: true}
	css, err := stylesheet.Assemble("terminal", p, fonts.Sizes{Base: 16, H1: 1.42, H2: 1.27, H3: 1.13, LineHeight: 1.5})
	require.NoError(t, err)

	fixed := Fix(css)
	assert.Contains(t, fixed, "--color-bg: #000000;")
	assert.Contains(t, fixed, "background-color: var(--color-bg);")
	assert.Contains(t, fixed, "background-color: rgba(255, 0, 0, 0.07);")
	assert.NotRegexp(t, eightDigitHex, fixed)
	assert.Contains(t, fixed, "overflow-wrap: break-word;")
}

func TestFixFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(path, []byte("a { color: #00000080; }\n"), 0644))

	changed, err := FixFile(path)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a { color: rgba(0, 0, 0, 0.50); }\n", string(data))

	changed, err = FixFile(path)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = FixFile(filepath.Join(t.TempDir(), "missing.css"))
	assert.Error(t, err)
}

func TestFixTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("a { color: #fff; }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dark-override.css"), []byte("a { color: #ffffff80; }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.css"), []byte("a { color: #ffffff80; }\n"), 0644))

	changed, err := FixTheme(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark-override.css"}, changed)

	data, err := os.ReadFile(filepath.Join(dir, "notes.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#ffffff80", "only style.css and overrides are touched")

	_, err = FixTheme(t.TempDir())
	assert.Error(t, err, "a theme without style.css")
}
