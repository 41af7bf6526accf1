package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"themesmith/palette"
)

// canvas wraps an RGBA image with the few primitives previews need.
// Rectangle corners are inclusive.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int, bg color.Color) *canvas {
	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return c
}

func (c *canvas) width() int  { return c.img.Bounds().Dx() }
func (c *canvas) height() int { return c.img.Bounds().Dy() }

// rect fills a rectangle, blending when col is translucent.
func (c *canvas) rect(x0, y0, x1, y1 int, col color.Color) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// outline strokes a rectangle border width pixels wide, inside the bounds.
func (c *canvas) outline(x0, y0, x1, y1, width int, col color.Color) {
	c.rect(x0, y0, x1, y0+width-1, col)
	c.rect(x0, y1-width+1, x1, y1, col)
	c.rect(x0, y0+width, x0+width-1, y1-width, col)
	c.rect(x1-width+1, y0+width, x1, y1-width, col)
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	c.rect(x0, y, x1, y, col)
}

func (c *canvas) vline(x, y0, y1 int, col color.Color) {
	c.rect(x, y0, x, y1, col)
}

// ellipse fills the ellipse inscribed in the box.
func (c *canvas) ellipse(x0, y0, x1, y1 int, col color.Color) {
	cx, cy := float64(x0+x1)/2, float64(y0+y1)/2
	rx, ry := float64(x1-x0)/2, float64(y1-y0)/2
	if rx <= 0 || ry <= 0 {
		c.rect(x0, y0, x1, y1, col)
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
			if dx*dx+dy*dy <= 1.0001 {
				c.rect(x, y, x, y, col)
			}
		}
	}
}

// polygon fills pts with the even-odd rule.
func (c *canvas) polygon(pts []image.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	var box image.Rectangle
	for _, p := range pts {
		box = box.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if insidePolygon(pts, float64(x)+0.5, float64(y)+0.5) {
				c.rect(x, y, x, y, col)
			}
		}
	}
}

func insidePolygon(pts []image.Point, x, y float64) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := float64(pts[i].X), float64(pts[i].Y)
		xj, yj := float64(pts[j].X), float64(pts[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// text draws s with its top-left corner at x,y.
func (c *canvas) text(x, y int, s string, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// rgb parses a hex color, falling back to def.
func rgb(hex string, def color.RGBA) color.RGBA {
	r, g, b, err := palette.HexToRGB(hex)
	if err != nil {
		return def
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// mix returns a*(1-f) + b*f.
func mix(a, b color.RGBA, f float64) color.RGBA {
	ch := func(x, y uint8) uint8 { return uint8(float64(x)*(1-f) + float64(y)*f) }
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 255}
}

func scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: 255}
}

// translucent is col at alpha (0-255), non-premultiplied.
func translucent(col color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)
