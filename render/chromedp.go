package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// chromeNames are the binaries chromedp can drive, in lookup order.
var chromeNames = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell", "chrome"}

// Chromedp screenshots pages over the DevTools protocol. One browser is
// started on first use and shared by every job until Close.
type Chromedp struct {
	ExecPath string
	Timeout  time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

// NewChromedp returns a renderer that starts its browser lazily.
func NewChromedp(timeout time.Duration) *Chromedp {
	return &Chromedp{Timeout: timeout}
}

func (c *Chromedp) Name() string { return "chromedp" }

// Available reports whether a Chrome-family binary can be found.
func (c *Chromedp) Available(context.Context) bool {
	if c.ExecPath != "" {
		_, err := os.Stat(c.ExecPath)
		return err == nil
	}
	for _, name := range chromeNames {
		if path, err := exec.LookPath(name); err == nil {
			c.ExecPath = path
			return true
		}
	}
	return false
}

// session starts the shared browser on first use. Tabs opened from the
// returned context reuse that process.
func (c *Chromedp) session(ctx context.Context) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return c.ctx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	// jobs come and go; the browser lives until Close
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	cancelAll := func() { cancelBrowser(); cancelAlloc() }

	// an empty Run launches the browser and its first tab
	if err := chromedp.Run(browserCtx); err != nil {
		cancelAll()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	c.ctx = browserCtx
	c.cancel = cancelAll
	c.started = true
	log.Printf("[Browser] Started headless browser %s", c.ExecPath)
	return c.ctx, nil
}

// Render opens the page in a new tab sized Width x Height and saves a PNG
// of the viewport.
func (c *Chromedp) Render(ctx context.Context, job Job) error {
	if job.HTMLPath == "" {
		return fmt.Errorf("no page to load")
	}

	browserCtx, err := c.session(ctx)
	if err != nil {
		return err
	}
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	runCtx, cancel := context.WithTimeout(tabCtx, c.Timeout)
	defer cancel()

	// follow the caller's cancellation as well as the timeout
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var shot []byte
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(job.Width), int64(job.Height)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}),
		chromedp.Navigate(fileURL(job.HTMLPath)),
		chromedp.WaitReady("body"),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(job.Output, shot, 0644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	return fitScreenshot(job.Output, job.Width, job.Height)
}

// Close shuts the shared browser down.
func (c *Chromedp) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		c.cancel()
		c.started = false
		log.Printf("[Browser] Closed headless browser")
	}
}
