package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var labelStyle = lipgloss.NewStyle().Width(12).Faint(true)

// Swatches renders one colored block per palette entry for terminal output.
func Swatches(p Palette) string {
	entries := []struct {
		label string
		hex   string
	}{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"background", p.Background},
		{"text", p.Text},
	}
	if p.Glow != "" {
		entries = append(entries, struct {
			label string
			hex   string
		}{"glow", normalizeHex(p.Glow)})
	}

	var b strings.Builder
	title := string(p.Type)
	if p.Name != "" {
		title = p.Name
	}
	fmt.Fprintf(&b, "%s (%s)\n", lipgloss.NewStyle().Bold(true).Render(title), strings.ToLower(p.Scheme()))

	for _, e := range entries {
		fg := p.Text
		if IsDarkColor(e.hex) == IsDarkColor(p.Text) {
			fg = p.Background
		}
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(e.hex)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 2).
			Render(e.hex)
		b.WriteString(labelStyle.Render(e.label))
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String()
}

// Plain is the palette as newline-separated "name: #hex" lines, used for the clipboard.
func Plain(p Palette) string {
	lines := []string{
		"primary: " + p.Primary,
		"secondary: " + p.Secondary,
		"accent: " + p.Accent,
		"background: " + p.Background,
		"text: " + p.Text,
	}
	if p.Glow != "" {
		lines = append(lines, "glow: "+p.Glow)
	}
	return strings.Join(lines, "\n")
}
