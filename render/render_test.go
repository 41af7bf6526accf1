package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/config"
	"themesmith/parser"
	"themesmith/stylesheet"
)

type fakeRenderer struct {
	name      string
	available bool
	err       error
	probes    int
	renders   int
}

func (f *fakeRenderer) Name() string { return f.name }

func (f *fakeRenderer) Available(context.Context) bool {
	f.probes++
	return f.available
}

func (f *fakeRenderer) Render(context.Context, Job) error {
	f.renders++
	return f.err
}

func TestChainFallsBack(t *testing.T) {
	missing := &fakeRenderer{name: "chrome"}
	broken := &fakeRenderer{name: "firefox", available: true, err: errors.New("exit 1")}
	works := &fakeRenderer{name: "schematic", available: true}

	chain := NewChain(missing, broken, works)
	for i := 0; i < 3; i++ {
		used, err := chain.Render(context.Background(), Job{Theme: "bold_sky"})
		require.NoError(t, err)
		assert.Equal(t, "schematic", used)
	}

	assert.Equal(t, 1, missing.probes, "availability is cached")
	assert.Equal(t, 0, missing.renders)
	assert.Equal(t, 3, broken.renders)
	assert.Equal(t, []string{"firefox", "schematic"}, chain.Available(context.Background()))
}

func TestChainReportsEveryAttempt(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain(
		&fakeRenderer{name: "a", available: true, err: boom},
		&fakeRenderer{name: "b", available: true, err: &CommandError{Binary: "b", TimedOut: true}},
	)

	_, err := chain.Render(context.Background(), Job{Theme: "zen_peak"})
	require.Error(t, err)

	rerr, ok := IsRenderError(err)
	require.True(t, ok)
	require.Len(t, rerr.Attempts, 2)
	assert.ErrorIs(t, err, boom)

	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, cerr.TimedOut)
	assert.Contains(t, err.Error(), "b timed out")

	_, err = NewChain().Render(context.Background(), Job{Theme: "x"})
	assert.EqualError(t, err, "render x: no renderer available")
}

func TestCommandUnavailableBinary(t *testing.T) {
	c := Browser("themesmith-no-such-browser", time.Second)
	assert.False(t, c.Available(context.Background()))
}

func TestCommandArgs(t *testing.T) {
	job := Job{Output: "/tmp/out.png", HTMLPath: "/tmp/page.html", Width: 400, Height: 300}

	chrome := Browser("chromium", time.Second)
	assert.Equal(t, []string{
		"--headless", "--disable-gpu", "--window-size=400,300",
		"--screenshot=/tmp/out.png", "--default-background-color=0", "file:///tmp/page.html",
	}, chrome.Args(job))

	firefox := Browser("/usr/bin/firefox", time.Second)
	assert.True(t, firefox.Firefox)
	assert.Equal(t, []string{
		"--headless", "--window-size=400,300", "--screenshot=/tmp/out.png", "file:///tmp/page.html",
	}, firefox.Args(job))
}

func TestCommandFailureIsCommandError(t *testing.T) {
	if _, err := os.Stat("/bin/false"); err != nil {
		t.Skip("no /bin/false")
	}
	dir := t.TempDir()
	c := &Command{Binary: "/bin/false", Timeout: 5 * time.Second}

	err := c.Render(context.Background(), Job{HTMLPath: filepath.Join(dir, "p.html"), Output: filepath.Join(dir, "out.png"), Width: 400, Height: 300})
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.ExitCode)
	assert.False(t, cerr.TimedOut)
}

func schematicJob(t *testing.T, layout, effect string) Job {
	p := parser.ExtractColors(":root { --color-primary: #ff0000; --color-secondary: #00ff00; --color-accent: #0000ff; --color-bg: #000000; --color-text: #cccccc; --color-glow: rgba(255, 0, 0, 0.20); }")
	return Job{
		Theme:  "neon_grid",
		Output: filepath.Join(t.TempDir(), "screenshots", "neon_grid.png"),
		Info:   parser.Info{Name: "neon_grid", Title: "Neon Grid", Layout: layout, Colors: p},
		Effect: effect,
		Width:  400,
		Height: 300,
	}
}

func TestChromedpStartFailureIsReported(t *testing.T) {
	c := NewChromedp(2 * time.Second)
	c.ExecPath = filepath.Join(t.TempDir(), "no-such-chrome")
	defer c.Close()

	_, err := c.session(context.Background())
	require.Error(t, err)
	assert.False(t, c.started, "a browser that never came up is not kept")

	err = c.Render(context.Background(), Job{HTMLPath: "/tmp/x.html", Output: filepath.Join(t.TempDir(), "x.png"), Width: 40, Height: 30})
	assert.ErrorContains(t, err, "start browser")
}

func TestSchematicDrawsEveryLayout(t *testing.T) {
	s := NewSchematic()
	layouts := append(stylesheet.Layouts(), parser.DefaultLayout)

	for _, layout := range layouts {
		t.Run(layout, func(t *testing.T) {
			job := schematicJob(t, layout, "")
			require.NoError(t, s.Render(context.Background(), job))

			img, err := imaging.Open(job.Output)
			require.NoError(t, err)
			assert.Equal(t, 400, img.Bounds().Dx())
			assert.Equal(t, 300, img.Bounds().Dy())
		})
	}
}

func TestSchematicRetroEffects(t *testing.T) {
	s := NewSchematic()
	for _, e := range stylesheet.Effects() {
		t.Run(string(e), func(t *testing.T) {
			job := schematicJob(t, "", string(e))
			require.NoError(t, s.Render(context.Background(), job))

			img, err := imaging.Open(job.Output)
			require.NoError(t, err)
			assert.Equal(t, 400, img.Bounds().Dx())
		})
	}
}

func TestSchematicTerminalBackground(t *testing.T) {
	job := schematicJob(t, "terminal", "")
	require.NoError(t, NewSchematic().Render(context.Background(), job))

	img, err := imaging.Open(job.Output)
	require.NoError(t, err)
	r, g, b, _ := img.At(200, 290).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestPreviewerWritesScreenshot(t *testing.T) {
	themes := t.TempDir()
	dir := filepath.Join(themes, "bold_sky")
	require.NoError(t, os.MkdirAll(dir, 0755))
	css := "/* Layout: card */\n:root { --color-primary: #336699; --color-bg: #ffffff; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte(css), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "example.html"), []byte("<html><head><title>Bold Sky</title></head></html>"), 0644))

	var seen Job
	spy := &spyRenderer{job: &seen}
	p := &Previewer{
		Chain:          NewChain(spy, NewSchematic()),
		ScreenshotsDir: filepath.Join(themes, "screenshots"),
		Width:          400,
		Height:         300,
	}

	used, err := p.PreviewTheme(context.Background(), dir, "")
	require.NoError(t, err)
	assert.Equal(t, "schematic", used)
	assert.FileExists(t, filepath.Join(themes, "screenshots", "bold_sky.png"))
	assert.Equal(t, "card", seen.Info.Layout)
	assert.NotEmpty(t, seen.HTMLPath, "browsers get a preview page")
	assert.NoFileExists(t, seen.HTMLPath, "the preview page is removed afterwards")

	err = p.Preview(context.Background(), filepath.Join(themes, "missing"))
	assert.Error(t, err)
}

// spyRenderer records the job and fails so the chain moves on.
type spyRenderer struct{ job *Job }

func (s *spyRenderer) Name() string                   { return "spy" }
func (s *spyRenderer) Available(context.Context) bool { return true }
func (s *spyRenderer) Render(_ context.Context, job Job) error {
	*s.job = job
	data, err := os.ReadFile(job.HTMLPath)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("empty page")
	}
	return errors.New("spy never renders")
}

func TestPreviewHTML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cosmic_wave")
	require.NoError(t, os.MkdirAll(dir, 0755))

	page, err := PreviewHTML(dir)
	require.NoError(t, err)
	defer os.Remove(page)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Cosmic Wave</h1>")
	assert.Contains(t, string(data), `href="file://`)
	assert.Contains(t, string(data), "cosmic_wave/style.css")
	assert.Contains(t, string(data), `theme = "cosmic_wave"`)
}

func TestFallbackPreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	require.NoError(t, NewSchematic().Fallback("lost_theme", out, 400, 300))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	r, _, _, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(240), r>>8)
}

func TestNewDefaultChain(t *testing.T) {
	cfg := config.Default()

	chain, closeFn, err := NewDefaultChain(cfg, ModeAuto)
	require.NoError(t, err)
	defer closeFn()
	assert.Len(t, chain.Renderers, len(cfg.Browsers)+2)
	assert.Equal(t, "schematic", chain.Renderers[len(chain.Renderers)-1].Name())

	chain, _, err = NewDefaultChain(cfg, ModeSchematic)
	require.NoError(t, err)
	assert.Len(t, chain.Renderers, 1)

	_, _, err = NewDefaultChain(cfg, "magic")
	assert.Error(t, err)
}
