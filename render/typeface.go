package render

import (
	"bytes"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// System fonts tried for schematic previews, first hit wins.
var (
	sansFontPaths = []string{
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		`C:\Windows\Fonts\arial.ttf`,
	}
	monoFontPaths = []string{
		"/usr/share/fonts/truetype/liberation/LiberationMono-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono-Bold.ttf",
		"/System/Library/Fonts/Monaco.ttf",
		`C:\Windows\Fonts\consola.ttf`,
	}
)

// Typefaces are the three text sizes a preview uses.
type Typefaces struct {
	Title font.Face
	Body  font.Face
	Small font.Face
}

// LoadTypefaces opens the first usable font in paths at the given pixel
// sizes. Without one, every size falls back to the built-in 7x13 face.
func LoadTypefaces(paths []string, title, body, small float64) Typefaces {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			continue
		}

		faces := make([]font.Face, 0, 3)
		for _, size := range []float64{title, body, small} {
			face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
			if err != nil {
				break
			}
			faces = append(faces, face)
		}
		if len(faces) == 3 {
			return Typefaces{Title: faces[0], Body: faces[1], Small: faces[2]}
		}
	}
	return Typefaces{Title: basicfont.Face7x13, Body: basicfont.Face7x13, Small: basicfont.Face7x13}
}

// parseFont accepts single fonts and collections (.ttc, first face).
func parseFont(data []byte) (*opentype.Font, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(data)
}
