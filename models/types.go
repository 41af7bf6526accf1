package models

import (
	"themesmith/fonts"
	"themesmith/palette"
)

// ThemeRecord is one entry of themes_metadata.json.
// Later commands read it back to drive previews without re-parsing CSS.
type ThemeRecord struct {
	Name   string            `json:"name"`
	Layout string            `json:"layout"`
	Colors palette.Palette   `json:"colors"`
	Fonts  fonts.Combination `json:"fonts"`
}

// RetroRecord is one entry of retro_themes_metadata.json.
type RetroRecord struct {
	Name    string            `json:"name"`
	Palette string            `json:"palette"` // retro palette name, e.g. "amber_crt"
	Effect  string            `json:"effect"`
	Fonts   fonts.Combination `json:"fonts"`
}

// Metadata file names, written into the themes directory.
const (
	StandardMetadataFile = "themes_metadata.json"
	RetroMetadataFile    = "retro_themes_metadata.json"
	WebfontMetadataFile  = "webfont_themes_metadata.json"
)

// BatchReport is printed at the end of every batch command.
type BatchReport struct {
	Attempted int
	Succeeded int
	Failed    []string // names (or indices) that failed, in order
}

// Add records one item outcome.
func (r *BatchReport) Add(name string, err error) {
	r.Attempted++
	if err != nil {
		r.Failed = append(r.Failed, name)
		return
	}
	r.Succeeded++
}
