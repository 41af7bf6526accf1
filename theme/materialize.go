// Package theme creates theme directories and runs the batch generators
// that fill the themes directory.
package theme

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"themesmith/config"
	"themesmith/cssfix"
	"themesmith/fonts"
	"themesmith/palette"
	"themesmith/parser"
	"themesmith/stylesheet"
)

//go:embed templates
var templateFS embed.FS

// Kind selects the stylesheet and page templates of a theme.
type Kind string

const (
	KindStandard Kind = "standard"
	KindRetro    Kind = "retro"
	KindWebfont  Kind = "webfont"
)

var funcs = map[string]any{
	"human": func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	"title": parser.Humanize,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

var (
	standardPage = htmltemplate.Must(htmltemplate.New("example.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/example.html.tmpl"))
	retroPage    = htmltemplate.Must(htmltemplate.New("example_retro.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/example_retro.html.tmpl"))

	confTemplate         = template.Must(template.New("theme.conf.tmpl").Funcs(template.FuncMap{"sh": shellEscape}).ParseFS(templateFS, "templates/theme.conf.tmpl"))
	licenseTemplate      = template.Must(template.New("LICENSE.tmpl").ParseFS(templateFS, "templates/LICENSE.tmpl"))
	retroLicenseTemplate = template.Must(template.New("LICENSE_retro.tmpl").ParseFS(templateFS, "templates/LICENSE_retro.tmpl"))
)

// Files every theme directory holds, whatever fonts were found.
var Files = []string{"style.css", "example.html", "theme.conf", "LICENSE"}

// Spec is everything drawn for one theme.
type Spec struct {
	Name    string
	Kind    Kind
	Layout  string
	Effect  stylesheet.Effect
	Palette palette.Palette
	Fonts   fonts.Combination
	Sizes   fonts.Sizes

	// Handnotes defaults to the kind's handnotes font.
	Handnotes fonts.Font
	// Sources holds downloaded font files by slot; other slots are
	// resolved from the font repository.
	Sources map[fonts.Slot]string
}

func (s Spec) handnotes() fonts.Font {
	switch {
	case s.Handnotes.ID != "":
		return s.Handnotes
	case s.Kind == KindRetro:
		return fonts.RetroHandnotes
	default:
		return fonts.Handnotes
	}
}

func (s Spec) fontFor(slot fonts.Slot) fonts.Font {
	switch slot {
	case fonts.SlotHeading:
		return s.Fonts.Heading
	case fonts.SlotText:
		return s.Fonts.Body
	case fonts.SlotCode:
		return s.Fonts.Code
	default:
		return s.handnotes()
	}
}

func (s Spec) assignments() []fonts.Assignment {
	var out []fonts.Assignment
	for _, slot := range fonts.Slots {
		a := fonts.Assignment{Slot: slot, ID: s.fontFor(slot).ID, Source: s.Sources[slot]}
		if a.ID == "" && a.Source == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Result describes a created theme.
type Result struct {
	Dir   string
	Fonts fonts.CopyResult
}

// Materializer writes theme directories under ThemesDir.
type Materializer struct {
	ThemesDir string
	Resolver  fonts.Resolver
	Site      config.Site
	FixCSS    bool
	Now       func() time.Time
}

// NewMaterializer builds a Materializer from the loaded configuration.
func NewMaterializer(cfg config.Config) *Materializer {
	return &Materializer{
		ThemesDir: cfg.ThemesDir,
		Resolver:  fonts.Resolver{Root: cfg.FontsDir},
		Site:      cfg.Site,
		FixCSS:    cfg.FixCSS,
		Now:       time.Now,
	}
}

// Create makes <ThemesDir>/<name> and fills it. An existing directory is
// never touched; a partially written one is removed again on error.
func (m *Materializer) Create(spec Spec) (Result, error) {
	if spec.Name == "" {
		return Result{}, errors.New("theme name is empty")
	}

	css, err := m.stylesheet(spec)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(m.ThemesDir, 0755); err != nil {
		return Result{}, fmt.Errorf("create themes dir: %w", err)
	}
	dir := filepath.Join(m.ThemesDir, spec.Name)
	if err := os.Mkdir(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("create theme %s: %w", spec.Name, err)
	}

	res, err := m.populate(dir, spec, css)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Printf("[Theme] ⚠️ Could not remove partial theme %s: %v", dir, rmErr)
		}
		return Result{}, err
	}
	return res, nil
}

func (m *Materializer) stylesheet(spec Spec) (string, error) {
	var (
		css string
		err error
	)
	if spec.Kind == KindRetro {
		css, err = stylesheet.AssembleRetro(spec.Name, spec.Palette, spec.Effect)
	} else {
		css, err = stylesheet.Assemble(spec.Layout, spec.Palette, spec.Sizes)
	}
	if err != nil {
		return "", err
	}
	if m.FixCSS {
		css = cssfix.Fix(css)
	}
	return css, nil
}

func (m *Materializer) populate(dir string, spec Spec, css string) (Result, error) {
	res := Result{Dir: dir}

	copied, err := m.Resolver.CopyInto(dir, spec.assignments())
	if err != nil {
		return res, err
	}
	res.Fonts = copied

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	data := pageData{
		Name:       spec.Name,
		Title:      parser.Humanize(spec.Name),
		Layout:     spec.Layout,
		Palette:    spec.Palette,
		Fonts:      spec.Fonts,
		Sizes:      spec.Sizes,
		Effect:     string(spec.Effect),
		Terminal:   spec.Effect == stylesheet.EffectTerminal || strings.Contains(spec.Name, "terminal"),
		Generated:  now().Format("2006-01-02 15:04:05"),
		Downloaded: spec.Kind == KindWebfont,
	}

	page, license := standardPage, licenseTemplate
	if spec.Kind == KindRetro {
		page, license = retroPage, retroLicenseTemplate
	}

	var html, lic bytes.Buffer
	if err := page.Execute(&html, data); err != nil {
		return res, fmt.Errorf("render example.html: %w", err)
	}
	if err := license.Execute(&lic, data); err != nil {
		return res, fmt.Errorf("render LICENSE: %w", err)
	}
	conf, err := m.themeConf(spec, copied)
	if err != nil {
		return res, err
	}

	files := map[string][]byte{
		"style.css":    []byte(css),
		"example.html": html.Bytes(),
		"theme.conf":   conf,
		"LICENSE":      lic.Bytes(),
	}
	for _, name := range Files {
		if err := os.WriteFile(filepath.Join(dir, name), files[name], 0644); err != nil {
			return res, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return res, nil
}

// themeConf points copied slots at the theme dir and the rest at the
// font repository as seen by the site generator.
func (m *Materializer) themeConf(spec Spec, copied fonts.CopyResult) ([]byte, error) {
	webfonts := make(map[string]string, len(fonts.Slots))
	for _, slot := range fonts.Slots {
		if _, ok := copied.Copied[slot]; ok {
			webfonts[string(slot)] = "$HTML_THEME_DIR/" + slot.FileName()
			continue
		}
		webfonts[string(slot)] = shellEscape(m.Resolver.RepositoryPath(m.Site.FontsPrefix, spec.fontFor(slot).ID, slot))
	}

	highlight := m.Site.HighlightCSS
	if spec.Kind == KindRetro {
		highlight = m.Site.RetroHighlightCSS
	}

	var buf bytes.Buffer
	err := confTemplate.Execute(&buf, struct {
		Site      config.Site
		Webfonts  map[string]string
		Highlight string
	}{m.Site, webfonts, highlight})
	if err != nil {
		return nil, fmt.Errorf("render theme.conf: %w", err)
	}
	return buf.Bytes(), nil
}

// shellEscape makes s safe inside a double-quoted bash string.
// Family directories such as "Higher Jump.ttf" carry spaces.
func shellEscape(s string) string {
	return shellReplacer.Replace(s)
}

var shellReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

type pageData struct {
	Name       string
	Title      string
	Layout     string
	Palette    palette.Palette
	Fonts      fonts.Combination
	Sizes      fonts.Sizes
	Effect     string
	Terminal   bool
	Generated  string
	Downloaded bool
}
