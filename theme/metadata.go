package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"themesmith/models"
)

// SaveMetadata writes records as indented JSON through a temp file and rename,
// so a crash never leaves a truncated metadata file behind.
func SaveMetadata(path string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}

// LoadStandardMetadata reads themes_metadata.json (or the webfont variant).
func LoadStandardMetadata(path string) ([]models.ThemeRecord, error) {
	var records []models.ThemeRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadRetroMetadata reads retro_themes_metadata.json.
func LoadRetroMetadata(path string) ([]models.RetroRecord, error) {
	var records []models.RetroRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
