package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// CommandError describes a browser process that did not produce a screenshot.
type CommandError struct {
	Binary   string
	ExitCode int
	Stderr   string
	TimedOut bool
}

func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("%s timed out", e.Binary)
	}
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

// Command screenshots a page by running a headless browser binary.
type Command struct {
	Binary  string
	Firefox bool
	Timeout time.Duration
}

// Browser returns the command renderer for a configured binary name.
// Anything with "firefox" in its name gets the firefox flag set.
func Browser(binary string, timeout time.Duration) *Command {
	return &Command{
		Binary:  binary,
		Firefox: strings.Contains(filepath.Base(binary), "firefox"),
		Timeout: timeout,
	}
}

func (c *Command) Name() string { return c.Binary }

// Available runs "<binary> --version".
func (c *Command) Available(ctx context.Context) bool {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, path, "--version").Run() == nil
}

// Args builds the command line for job.
func (c *Command) Args(job Job) []string {
	args := []string{"--headless"}
	if !c.Firefox {
		args = append(args, "--disable-gpu")
	}
	args = append(args,
		fmt.Sprintf("--window-size=%d,%d", job.Width, job.Height),
		"--screenshot="+job.Output,
	)
	if !c.Firefox {
		args = append(args, "--default-background-color=0")
	}
	return append(args, fileURL(job.HTMLPath))
}

// Render succeeds only when the process exits 0 and left an image behind.
func (c *Command) Render(ctx context.Context, job Job) error {
	if job.HTMLPath == "" {
		return errors.New("no page to load")
	}
	if err := os.MkdirAll(filepath.Dir(job.Output), 0755); err != nil {
		return err
	}
	// a stale file from an earlier run must not count as success
	os.Remove(job.Output)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Binary, c.Args(job)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cerr := &CommandError{Binary: c.Binary, ExitCode: -1, Stderr: stderr.String()}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			cerr.TimedOut = true
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return cerr
	}

	return fitScreenshot(job.Output, job.Width, job.Height)
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
