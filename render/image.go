package render

import (
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// detectImageFormat reads the magic bytes of a screenshot file.
func detectImageFormat(data []byte) (string, error) {
	if len(data) < 8 {
		return "", errors.New("data too short to determine format")
	}

	switch {
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "png", nil
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "jpeg", nil
	case string(data[0:6]) == "GIF87a" || string(data[0:6]) == "GIF89a":
		return "gif", nil
	}
	return "", errors.New("unknown image format")
}

// fitScreenshot checks that a browser really wrote an image and crops or
// scales it to width x height, e.g. on HiDPI displays. Output is PNG.
func fitScreenshot(path string, width, height int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("no screenshot written: %w", err)
	}
	format, err := detectImageFormat(data)
	if err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("decode %s screenshot: %w", format, err)
	}

	b := img.Bounds()
	if format == "png" && b.Dx() == width && b.Dy() == height {
		return nil
	}
	return imaging.Save(imaging.Fill(img, width, height, imaging.Top, imaging.Lanczos), path)
}
