package downloader

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrWeightNotFound means the family archive has no .ttf for the weight.
var ErrWeightNotFound = errors.New("no ttf for weight")

// weightNames maps numeric weights to the style suffix used in file names.
var weightNames = map[string]string{
	"100": "Thin",
	"200": "ExtraLight",
	"300": "Light",
	"400": "Regular",
	"500": "Medium",
	"600": "SemiBold",
	"700": "Bold",
	"800": "ExtraBold",
	"900": "Black",
}

// NumericWeight turns a variant name ("regular", "700") into its number.
func NumericWeight(variant string) string {
	if variant == "regular" {
		return "400"
	}
	return variant
}

// ExtractTTF returns the first upright .ttf in the archive for variant.
// A -<Style>.ttf suffix wins over a file that merely mentions the number.
func ExtractTTF(archive []byte, variant string) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", nil, fmt.Errorf("open font archive: %w", err)
	}

	weight := NumericWeight(variant)
	suffix := "-" + weightNames[weight] + ".ttf"

	var byStyle, byNumber *zip.File
	for _, f := range zr.File {
		name := path.Base(f.Name)
		if !strings.HasSuffix(strings.ToLower(name), ".ttf") || strings.Contains(name, "Italic") {
			continue
		}
		if byStyle == nil && weightNames[weight] != "" && strings.HasSuffix(name, suffix) {
			byStyle = f
		}
		if byNumber == nil && strings.Contains(name, weight) {
			byNumber = f
		}
	}

	match := byStyle
	if match == nil {
		match = byNumber
	}
	if match == nil {
		return "", nil, fmt.Errorf("%w %s", ErrWeightNotFound, weight)
	}

	rc, err := match.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", match.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", match.Name, err)
	}
	return match.Name, data, nil
}
