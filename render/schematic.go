package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"themesmith/palette"
	"themesmith/parser"
	"themesmith/stylesheet"
)

var paragraphLines = []string{
	"This theme features beautiful typography",
	"and a carefully crafted color palette.",
	"Perfect for blogs and documentation.",
}

// Schematic draws an approximation of the theme from its colors and
// layout. It needs no browser and is always available.
type Schematic struct {
	once              sync.Once
	sans, mono, large Typefaces
}

func NewSchematic() *Schematic { return &Schematic{} }

func (s *Schematic) Name() string { return "schematic" }

func (s *Schematic) Available(context.Context) bool { return true }

func (s *Schematic) faces() {
	s.once.Do(func() {
		s.sans = LoadTypefaces(sansFontPaths, 22, 13, 11)
		s.mono = LoadTypefaces(monoFontPaths, 20, 12, 10)
		s.large = LoadTypefaces(sansFontPaths, 24, 24, 24)
	})
}

// Render draws the retro variant when the job carries an effect.
func (s *Schematic) Render(_ context.Context, job Job) error {
	s.faces()

	var img image.Image
	if job.Effect != "" {
		img = s.drawRetro(job)
	} else {
		img = s.drawStandard(job)
	}
	return save(img, job.Output)
}

// Fallback writes the plain gray card used when a theme cannot be read.
func (s *Schematic) Fallback(name, output string, width, height int) error {
	s.faces()
	c := newCanvas(width, height, color.RGBA{240, 240, 240, 255})
	c.text(width/2-100, height/2-20, parser.Humanize(name), s.large.Title, color.RGBA{100, 100, 100, 255})
	c.text(width/2-50, height/2+10, "Theme Preview", s.large.Title, color.RGBA{150, 150, 150, 255})
	return save(c.img, output)
}

func save(img image.Image, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	if err := imaging.Save(img, output); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

func (s *Schematic) drawStandard(job Job) image.Image {
	w, h := job.Width, job.Height
	colors := job.Info.Colors
	bg := rgb(colors.Background, white)
	text := rgb(colors.Text, black)
	primary := rgb(colors.Primary, color.RGBA{0x66, 0x7e, 0xea, 255})
	secondary := rgb(colors.Secondary, color.RGBA{0x76, 0x4b, 0xa2, 255})
	accent := rgb(colors.Accent, primary)
	dark := colors.IsDark
	title := job.Info.Title
	if title == "" {
		title = parser.Humanize(job.Theme)
	}
	layout := job.Info.Layout

	c := newCanvas(w, h, bg)
	contentX, contentY := 20, 60

	switch layout {
	case "hero":
		for y := 0; y < 120; y++ {
			c.rect(0, y, w, y+1, mix(primary, bg, float64(y)/120))
		}
		titleCol := bg
		if dark {
			titleCol = white
		}
		c.text(20, 40, title, s.sans.Title, titleCol)
		contentY = 130

	case "sidebar":
		c.rect(0, 0, 100, h, primary)
		c.text(10, 20, "MENU", s.sans.Small, bg)
		c.hline(10, 90, 40, bg)
		for i, item := range []string{"Home", "About", "Blog"} {
			c.text(10, 50+20*i, item, s.sans.Small, bg)
		}
		c.text(120, 20, title, s.sans.Title, primary)
		contentX = 120

	case "card":
		const margin = 20
		shadow := color.RGBA{200, 200, 200, 255}
		if dark {
			shadow = color.RGBA{50, 50, 50, 255}
		}
		layer := newCanvas(w, h, bg)
		layer.rect(margin+3, margin+3, w-margin+3, h-margin+3, shadow)
		draw.Draw(c.img, c.img.Bounds(), imaging.Blur(layer.img, 3), image.Point{}, draw.Src)

		c.rect(margin, margin, w-margin, h-margin, bg)
		c.outline(margin, margin, w-margin, h-margin, 2, primary)
		c.text(margin+15, margin+15, title, s.sans.Title, primary)
		contentX, contentY = margin+15, margin+55

	case "terminal":
		c.rect(0, 0, w, h, black)
		c.rect(0, 0, w, 25, color.RGBA{40, 40, 40, 255})
		c.ellipse(10, 8, 18, 16, color.RGBA{255, 95, 86, 255})
		c.ellipse(25, 8, 33, 16, color.RGBA{255, 189, 46, 255})
		c.ellipse(40, 8, 48, 16, color.RGBA{39, 201, 63, 255})
		green := color.RGBA{0, 255, 0, 255}
		c.text(10, 30, "$ theme --preview "+job.Theme, s.sans.Body, green)
		c.text(10, 50, "> Loading theme...", s.sans.Small, green)
		text = green
		contentX, contentY = 10, 80

	case "brutalist":
		c.rect(0, 0, w, 60, primary)
		c.polygon([]image.Point{image.Pt(0, 60), image.Pt(w, 60), image.Pt(w, 80), image.Pt(0, 100)}, primary)
		c.text(20, 15, strings.ToUpper(title), s.sans.Title, bg)
		contentY = 110

	case "magazine":
		c.vline(w/3, 60, h-20, text)
		c.vline(2*w/3, 60, h-20, text)
		c.text(20, 15, title, s.sans.Title, primary)

	case "gradient", "floating":
		for y := 0; y < h; y++ {
			c.hline(0, w, y, mix(bg, primary, float64(y)/float64(h)*0.3))
		}
		c.text(20, 20, title, s.sans.Title, primary)

	default:
		c.text(20, 20, title, s.sans.Title, primary)
	}

	if layout != "terminal" {
		c.text(contentX, contentY, "Modern Design", s.sans.Body, secondary)

		y := contentY + 25
		for _, line := range paragraphLines {
			if y < h-60 {
				c.text(contentX, y, line, s.sans.Small, text)
				y += 12
			}
		}
		if y < h-40 {
			c.text(contentX, y+10, "→ Learn more", s.sans.Body, secondary)
		}

		if (layout == "hero" || layout == "card" || layout == "gradient") && y < h-50 {
			by := h - 50
			c.rect(contentX, by, contentX+80, by+30, accent)
			label := white
			if palette.IsDarkColor(colors.Accent) {
				label = bg
			}
			c.text(contentX+15, by+8, "Preview", s.sans.Body, label)
		}
	}

	switch layout {
	case "geometric":
		c.polygon([]image.Point{image.Pt(w-50, 100), image.Pt(w-30, 110), image.Pt(w-50, 120), image.Pt(w-70, 110)}, accent)
	case "organic":
		c.ellipse(w-80, 80, w-40, 120, accent)
	case "newspaper":
		c.vline(w/3, 100, h-40, text)
		c.vline(2*w/3, 100, h-40, text)
	}

	info := scale(text, 0.6)
	if dark {
		info = scale(text, 0.8)
	}
	c.text(10, h-20, fmt.Sprintf("%s • %s", colors.Scheme(), layout), s.sans.Small, info)
	return c.img
}

func (s *Schematic) drawRetro(job Job) image.Image {
	w, h := job.Width, job.Height
	colors := job.Info.Colors
	bg := rgb(colors.Background, black)
	text := rgb(colors.Text, color.RGBA{0, 255, 0, 255})
	primary := rgb(colors.Primary, color.RGBA{0, 255, 0, 255})
	secondary := rgb(colors.Secondary, color.RGBA{0, 0xcc, 0, 255})
	effect := job.Effect
	heading := strings.ToUpper(strings.ReplaceAll(job.Theme, "_", " "))

	c := newCanvas(w, h, bg)

	switch stylesheet.Effect(effect) {
	case stylesheet.EffectScanlines:
		for y := 0; y < h; y += 4 {
			c.hline(0, w, y, translucent(white, 10))
		}
	case stylesheet.EffectGrid:
		for x := 0; x < w; x += 20 {
			c.vline(x, 0, h, translucent(white, 8))
		}
		for y := 0; y < h; y += 20 {
			c.hline(0, w, y, translucent(white, 8))
		}
	case stylesheet.EffectDots:
		for x := 10; x < w; x += 20 {
			for y := 10; y < h; y += 20 {
				c.ellipse(x-1, y-1, x+1, y+1, translucent(primary, 30))
			}
		}
	case stylesheet.EffectCRT:
		for i := 0; i < 20; i++ {
			c.outline(i, i, w-i, h-i, 2, translucent(black, uint8(255*i/20)))
		}
	}

	y := 40
	if effect == string(stylesheet.EffectTerminal) || strings.Contains(job.Theme, "terminal") {
		c.text(10, 10, "$ theme --preview "+job.Theme, s.mono.Body, primary)
		c.text(10, 30, "> LOADING...", s.mono.Small, secondary)
		y = 60
	} else {
		c.text(10, 10, heading, s.mono.Title, primary)
	}

	c.text(10, y, "SYSTEM: RETRO THEME", s.mono.Body, secondary)
	y += 30
	for _, line := range []string{
		"WIDTH: 1200PX MIN",
		"LAYOUT: SINGLE COLUMN",
		"EFFECT: " + strings.ToUpper(effect),
		"STATUS: ACTIVE",
	} {
		c.text(10, y, "> "+line, s.mono.Small, text)
		y += 15
	}

	y += 20
	c.rect(10, y, w-10, y+2, primary)

	c.text(10, h-30, "["+strings.ToUpper(effect)+"]", s.mono.Small, secondary)
	c.text(w-100, h-30, "RETRO MODE", s.mono.Small, secondary)

	if colors.Glow == "" {
		return c.img
	}
	glow := newCanvas(w, h, bg)
	glow.text(10, 10, heading, s.mono.Title, primary)
	return imaging.Overlay(c.img, imaging.Blur(glow.img, 2), image.Point{}, 0.3)
}
