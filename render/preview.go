package render

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"themesmith/parser"
)

var miniPage = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <link rel="stylesheet" href="{{.Stylesheet}}">
    <style>
        body {
            margin: 0;
            padding: 20px;
            min-height: 260px;
            overflow: hidden;
        }
        .preview-container {
            max-width: 360px;
            margin: 0 auto;
        }
        h1 {
            font-size: 1.8em !important;
            margin: 0.3em 0 !important;
        }
        h2 {
            font-size: 1.3em !important;
            margin: 0.5em 0 0.3em 0 !important;
        }
        p {
            font-size: 0.9em !important;
            line-height: 1.4 !important;
            margin: 0.5em 0 !important;
        }
        .quote {
            font-size: 0.85em !important;
            padding: 0.5em 1em !important;
            margin: 0.5em 0 !important;
        }
        pre {
            font-size: 0.75em !important;
            padding: 0.5em !important;
            margin: 0.5em 0 !important;
            max-height: 60px;
            overflow: hidden;
        }
        a {
            font-size: 0.9em !important;
        }
        .preview-container > *:nth-child(n+6) {
            display: none;
        }
    </style>
</head>
<body>
    <div class="preview-container">
        <h1>{{.Title}}</h1>
        <p>This is a preview of the theme's typography and color scheme.</p>
        <h2>Features</h2>
        <p>Clean design with <a href="#">interactive links</a> and elegant styling.</p>
        <div class="quote">
            "Beautiful themes for Gemtexter"
        </div>
        <pre><code>theme = "{{.Name}}"</code></pre>
    </div>
</body>
</html>
`))

// PreviewHTML writes the small page browsers capture for the theme in dir.
// The file lives in the system temp dir; the caller removes it.
func PreviewHTML(dir string) (string, error) {
	name := filepath.Base(dir)
	abs, err := filepath.Abs(filepath.Join(dir, "style.css"))
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "themesmith-preview-*.html")
	if err != nil {
		return "", fmt.Errorf("create preview page: %w", err)
	}
	defer f.Close()

	err = miniPage.Execute(f, struct {
		Stylesheet template.URL
		Title      string
		Name       string
	}{template.URL(fileURL(abs)), parser.Humanize(name), name})
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("render preview page: %w", err)
	}
	return f.Name(), nil
}

// Previewer renders screenshots/<name>.png for theme directories.
type Previewer struct {
	Chain          *Chain
	ScreenshotsDir string
	Width          int
	Height         int

	// Fallback, when set, draws a placeholder for themes that cannot be read.
	Fallback *Schematic
}

// Preview renders a standard theme.
func (p *Previewer) Preview(ctx context.Context, dir string) error {
	_, err := p.PreviewTheme(ctx, dir, "")
	return err
}

// OutputPath is where the preview for theme name is written.
func (p *Previewer) OutputPath(name string) string {
	return filepath.Join(p.ScreenshotsDir, name+".png")
}

// PreviewTheme renders the theme in dir, with a retro effect when set, and
// returns the name of the renderer that produced the image.
func (p *Previewer) PreviewTheme(ctx context.Context, dir, effect string) (string, error) {
	name := filepath.Base(dir)
	output := p.OutputPath(name)

	info, err := parser.ReadTheme(dir)
	if err != nil {
		if p.Fallback != nil {
			if ferr := p.Fallback.Fallback(name, output, p.Width, p.Height); ferr == nil {
				log.Printf("[Preview] Wrote placeholder for %s", name)
			}
		}
		return "", err
	}

	job := Job{
		Theme:  name,
		Dir:    dir,
		Output: output,
		Info:   info,
		Effect: effect,
		Width:  p.Width,
		Height: p.Height,
	}

	if _, err := os.Stat(filepath.Join(dir, "example.html")); err == nil {
		page, err := PreviewHTML(dir)
		if err != nil {
			log.Printf("[Preview] ⚠️ %s: %v", name, err)
		} else {
			job.HTMLPath = page
			defer os.Remove(page)
		}
	}

	return p.Chain.Render(ctx, job)
}
