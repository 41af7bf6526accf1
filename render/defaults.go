package render

import (
	"fmt"

	"themesmith/config"
)

// Renderer selections accepted by the screenshot command.
const (
	ModeAuto      = "auto"
	ModeBrowser   = "browser"
	ModeSchematic = "schematic"
)

// NewDefaultChain builds chromedp, then each configured browser binary,
// then the schematic drawer, trimmed by mode. The returned func closes
// the shared browser.
func NewDefaultChain(cfg config.Config, mode string) (*Chain, func(), error) {
	timeout := cfg.BrowserTimeout.Duration
	cdp := NewChromedp(timeout)

	var browsers []Renderer
	browsers = append(browsers, cdp)
	for _, b := range cfg.Browsers {
		browsers = append(browsers, Browser(b, timeout))
	}

	var renderers []Renderer
	switch mode {
	case ModeAuto, "":
		renderers = append(browsers, NewSchematic())
	case ModeBrowser:
		renderers = browsers
	case ModeSchematic:
		renderers = []Renderer{NewSchematic()}
	default:
		return nil, nil, fmt.Errorf("unknown renderer %q (want %s, %s or %s)", mode, ModeAuto, ModeBrowser, ModeSchematic)
	}
	return NewChain(renderers...), cdp.Close, nil
}
