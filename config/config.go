package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is looked up in the working directory when no --config is given.
const DefaultFileName = "themesmith.toml"

// Config holds every path and knob the batch commands need.
// Values that used to be hardcoded absolute paths live here.
type Config struct {
	ThemesDir      string   `toml:"themes_dir"`
	FontsDir       string   `toml:"fonts_dir"`
	ScreenshotsDir string   `toml:"screenshots_dir"`
	FontCacheDir   string   `toml:"font_cache_dir"`
	Count          int      `toml:"count"`
	Seed           uint64   `toml:"seed"`
	Workers        int      `toml:"workers"`
	BrowserTimeout Duration `toml:"browser_timeout"`
	PreviewWidth   int      `toml:"preview_width"`
	PreviewHeight  int      `toml:"preview_height"`
	Browsers       []string `toml:"browsers"`
	FixCSS         bool     `toml:"fix_css"`
	LogFile        string   `toml:"log_file"`
	GoogleFontsURL string   `toml:"google_fonts_url"`

	Site Site `toml:"site"`
}

// Site describes the static-site generator paths written into theme.conf.
type Site struct {
	Header            string `toml:"header"`
	Footer            string `toml:"footer"`
	HighlightCSS      string `toml:"highlight_css"`
	RetroHighlightCSS string `toml:"retro_highlight_css"`
	FontsPrefix       string `toml:"fonts_prefix"`
}

// Duration lets TOML carry values like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ThemesDir:      "./extras/html/themes",
		FontsDir:       "./extras/html/fonts",
		FontCacheDir:   "fonts_cache",
		Count:          50,
		Workers:        10,
		BrowserTimeout: Duration{10 * time.Second},
		PreviewWidth:   400,
		PreviewHeight:  300,
		Browsers:       []string{"google-chrome", "chromium", "chromium-browser", "firefox"},
		FixCSS:         true,
		GoogleFontsURL: "https://fonts.google.com/download",
		Site: Site{
			Header:            "./extras/html/header.html.part",
			Footer:            "./extras/html/footer.html.part",
			HighlightCSS:      "./extras/html/source-highlight-styles/mono.css",
			RetroHighlightCSS: "./extras/html/source-highlight-styles/neon.css",
			FontsPrefix:       "./extras/html/fonts",
		},
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot expand config path: %w", err)
	}

	if _, err := os.Stat(expanded); errors.Is(err, os.ErrNotExist) {
		log.Printf("[Config] %s not found, using defaults", expanded)
		return cfg.normalize()
	}

	meta, err := toml.DecodeFile(expanded, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("error decoding %s: %w", expanded, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Printf("[Config] ⚠️ ignoring unknown keys in %s: %v", expanded, undecoded)
	}

	log.Printf("[Config] ✓ loaded %s", expanded)
	return cfg.normalize()
}

// normalize fills derived defaults and expands ~ in every path.
func (c Config) normalize() (Config, error) {
	var err error
	for _, p := range []*string{&c.ThemesDir, &c.FontsDir, &c.ScreenshotsDir, &c.FontCacheDir, &c.LogFile} {
		if *p == "" {
			continue
		}
		if *p, err = ExpandPath(*p); err != nil {
			return c, err
		}
	}

	if c.ScreenshotsDir == "" {
		c.ScreenshotsDir = filepath.Join(c.ThemesDir, "screenshots")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.ThemesDir, "themesmith.log")
	}
	if c.Workers <= 0 {
		c.Workers = 10
	}
	if c.PreviewWidth <= 0 || c.PreviewHeight <= 0 {
		c.PreviewWidth, c.PreviewHeight = 400, 300
	}
	if c.BrowserTimeout.Duration <= 0 {
		c.BrowserTimeout = Duration{10 * time.Second}
	}
	return c, nil
}

// WithThemesDir moves the themes dir. Paths that were derived from the old
// one (screenshots, log file) move along; explicitly configured ones stay.
func (c Config) WithThemesDir(dir string) (Config, error) {
	old := c.ThemesDir
	if c.ScreenshotsDir == filepath.Join(old, "screenshots") {
		c.ScreenshotsDir = ""
	}
	if c.LogFile == filepath.Join(old, "themesmith.log") {
		c.LogFile = ""
	}
	c.ThemesDir = dir
	return c.normalize()
}

// Save writes cfg as TOML via a temp file and rename, refusing to clobber
// an existing file unless overwrite is set.
func Save(path string, cfg Config, overwrite bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(expanded); err == nil {
			return fmt.Errorf("config file already exists: %s", expanded)
		}
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	tmp := expanded + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, expanded)
}

// ExpandPath expands ~ to the user's home directory, or returns the path as-is
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}
