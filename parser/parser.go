// Package parser reads generated themes back from disk: colors and layout
// from style.css, the title from example.html, and the theme directory list.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"themesmith/palette"
)

// Fallback colors when a custom property is absent.
var defaultColors = palette.Palette{
	Primary:    "#667eea",
	Secondary:  "#764ba2",
	Accent:     "#667eea",
	Background: "#ffffff",
	Text:       "#333333",
}

var (
	colorPatterns = map[string]*regexp.Regexp{
		"primary":    regexp.MustCompile(`--color-primary:\s*([#\w]+);`),
		"secondary":  regexp.MustCompile(`--color-secondary:\s*([#\w]+);`),
		"accent":     regexp.MustCompile(`--color-accent:\s*([#\w]+);`),
		"background": regexp.MustCompile(`--color-bg:\s*([#\w]+);`),
		"text":       regexp.MustCompile(`--color-text:\s*([#\w]+);`),
	}
	// glow may have been rewritten to rgba() by the post-processor
	glowPattern   = regexp.MustCompile(`--color-glow:\s*([^;]+);`)
	layoutPattern = regexp.MustCompile(`/\* Layout: (\w+) \*/`)
)

// DefaultLayout is reported when style.css carries no layout marker.
const DefaultLayout = "default"

// ExtractColors pulls the --color-* custom properties out of css.
func ExtractColors(css string) palette.Palette {
	p := defaultColors
	fields := map[string]*string{
		"primary":    &p.Primary,
		"secondary":  &p.Secondary,
		"accent":     &p.Accent,
		"background": &p.Background,
		"text":       &p.Text,
	}
	for name, re := range colorPatterns {
		if m := re.FindStringSubmatch(css); m != nil {
			*fields[name] = m[1]
		}
	}
	if m := glowPattern.FindStringSubmatch(css); m != nil {
		p.Glow = strings.TrimSpace(m[1])
	}
	p.IsDark = palette.IsDarkColor(p.Background)
	return p
}

// ExtractLayout returns the id from the "/* Layout: x */" marker.
func ExtractLayout(css string) string {
	if m := layoutPattern.FindStringSubmatch(css); m != nil {
		return m[1]
	}
	return DefaultLayout
}

// Humanize turns cosmic_wave into "Cosmic Wave".
func Humanize(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// Info is what previews need to know about an existing theme.
type Info struct {
	Name   string
	Dir    string
	Title  string
	Layout string
	Colors palette.Palette
}

// ReadTheme parses dir/style.css and, when present, dir/example.html.
func ReadTheme(dir string) (Info, error) {
	name := filepath.Base(dir)
	info := Info{Name: name, Dir: dir, Title: Humanize(name)}

	css, err := os.ReadFile(filepath.Join(dir, "style.css"))
	if err != nil {
		return info, fmt.Errorf("read style.css: %w", err)
	}
	info.Colors = ExtractColors(string(css))
	info.Layout = ExtractLayout(string(css))

	if title, err := readTitle(filepath.Join(dir, "example.html")); err == nil && title != "" {
		info.Title = title
	}
	return info, nil
}

// readTitle prefers the page header, then <title>.
func readTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", err
	}

	if h := strings.TrimSpace(doc.Find(".header h1").First().Text()); h != "" {
		return h, nil
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

// Dir is one theme directory found by Scan.
type Dir struct {
	Name string
	Path string
}

// Valid reports whether the directory holds a style.css.
func (d Dir) Valid() bool {
	info, err := os.Stat(filepath.Join(d.Path, "style.css"))
	return err == nil && !info.IsDir()
}

var skipDirs = map[string]bool{"screenshots": true, ".git": true}

// Scan lists theme directories under themesDir, sorted by name.
func Scan(themesDir string) ([]Dir, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, err
	}

	var dirs []Dir
	for _, entry := range entries {
		if !entry.IsDir() || skipDirs[entry.Name()] {
			continue
		}
		dirs = append(dirs, Dir{Name: entry.Name(), Path: filepath.Join(themesDir, entry.Name())})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs, nil
}

// ScanValid is Scan filtered to directories with a style.css.
func ScanValid(themesDir string) ([]Dir, error) {
	dirs, err := Scan(themesDir)
	if err != nil {
		return nil, err
	}
	valid := dirs[:0]
	for _, d := range dirs {
		if d.Valid() {
			valid = append(valid, d)
		}
	}
	return valid, nil
}
