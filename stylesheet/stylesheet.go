// Package stylesheet assembles theme CSS from a shared base template and a
// per-layout fragment.
package stylesheet

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"

	"themesmith/fonts"
	"themesmith/palette"
)

//go:embed templates
var templateFS embed.FS

// ErrUnknownLayout is returned when a layout id has no registered fragment.
var ErrUnknownLayout = errors.New("unknown layout")

// layoutOrder is the declared order; the first 15 are the classic set.
var layoutOrder = []string{
	"centered", "wide", "magazine", "card", "asymmetric", "minimal_grid",
	"brutalist", "newspaper", "terminal", "book", "sidebar", "hero",
	"masonry", "split", "overlap", "floating", "gradient", "geometric",
	"swiss", "retro", "future", "organic", "technical", "artistic",
}

const classicLayoutCount = 15

var (
	baseTemplate  *template.Template
	retroTemplate *template.Template
	layouts       = make(map[string]*template.Template)
)

// Data is what every stylesheet template is executed with.
type Data struct {
	Name     string
	Palette  palette.Palette
	Sizes    fonts.Sizes
	Effect   string
	Terminal bool
}

// init parses the embedded templates and registers one fragment per layout
func init() {
	baseTemplate = mustParse("templates/base.css.tmpl")
	retroTemplate = mustParse("templates/retro/retro.css.tmpl")

	for _, id := range layoutOrder {
		registerLayout(id, mustParse(path.Join("templates/layouts", id+".css.tmpl")))
	}
}

func mustParse(name string) *template.Template {
	return template.Must(template.New(path.Base(name)).Option("missingkey=error").ParseFS(templateFS, name))
}

func registerLayout(id string, tmpl *template.Template) {
	layouts[id] = tmpl
}

// Layouts returns every layout id in declared order.
func Layouts() []string {
	return append([]string(nil), layoutOrder...)
}

// ClassicLayouts returns the original fifteen layouts.
func ClassicLayouts() []string {
	return append([]string(nil), layoutOrder[:classicLayoutCount]...)
}

// IsLayout reports whether id has a registered fragment.
func IsLayout(id string) bool {
	_, ok := layouts[id]
	return ok
}

// Assemble returns base CSS, a layout marker comment, and the layout fragment.
// The result is not validated.
func Assemble(layout string, p palette.Palette, sizes fonts.Sizes) (string, error) {
	tmpl, ok := layouts[layout]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}

	data := Data{Palette: p, Sizes: sizes}

	var base, fragment bytes.Buffer
	if err := baseTemplate.Execute(&base, data); err != nil {
		return "", fmt.Errorf("render base stylesheet: %w", err)
	}
	if err := tmpl.Execute(&fragment, data); err != nil {
		return "", fmt.Errorf("render %s layout: %w", layout, err)
	}

	return base.String() + "\n\n/* Layout: " + layout + " */\n" + fragment.String(), nil
}

// AssembleRetro renders the single-column retro stylesheet with an effect overlay.
// Terminal prompts are added for the terminal effect or a name containing "terminal".
func AssembleRetro(name string, p palette.Palette, effect Effect) (string, error) {
	if !effect.Valid() {
		return "", fmt.Errorf("unknown effect %q", effect)
	}

	data := Data{
		Name:     name,
		Palette:  p,
		Effect:   string(effect),
		Terminal: effect == EffectTerminal || strings.Contains(name, "terminal"),
	}

	var buf bytes.Buffer
	if err := retroTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render retro stylesheet: %w", err)
	}
	return buf.String(), nil
}
