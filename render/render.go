// Package render produces theme preview PNGs, either by screenshotting the
// theme in a headless browser or by drawing a schematic of its layout.
package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"themesmith/parser"
)

// Job is one preview to produce.
type Job struct {
	Theme    string
	Dir      string
	HTMLPath string // page loaded by browser renderers
	Output   string
	Info     parser.Info
	Effect   string // retro effect, empty for standard themes
	Width    int
	Height   int
}

// Renderer is one strategy for turning a Job into a PNG.
type Renderer interface {
	Name() string
	Available(ctx context.Context) bool
	Render(ctx context.Context, job Job) error
}

// Attempt is one renderer's failure inside a chain.
type Attempt struct {
	Renderer string
	Err      error
}

// RenderError is returned when every available renderer failed.
type RenderError struct {
	Theme    string
	Attempts []Attempt
}

func (e *RenderError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("render %s: no renderer available", e.Theme)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Renderer, a.Err))
	}
	return fmt.Sprintf("render %s: %s", e.Theme, strings.Join(parts, "; "))
}

func (e *RenderError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// IsRenderError reports whether err is a *RenderError.
func IsRenderError(err error) (*RenderError, bool) {
	var re *RenderError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// Chain tries renderers in order until one succeeds. Availability is
// probed once per renderer and remembered for the life of the chain.
type Chain struct {
	Renderers []Renderer

	mu     sync.Mutex
	probed map[int]bool
}

// NewChain builds a chain over renderers, best first.
func NewChain(renderers ...Renderer) *Chain {
	return &Chain{Renderers: renderers}
}

func (c *Chain) available(ctx context.Context, i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.probed == nil {
		c.probed = make(map[int]bool)
	}
	if ok, seen := c.probed[i]; seen {
		return ok
	}
	ok := c.Renderers[i].Available(ctx)
	c.probed[i] = ok
	if ok {
		log.Printf("[Render] ✓ %s available", c.Renderers[i].Name())
	} else {
		log.Printf("[Render] %s not available", c.Renderers[i].Name())
	}
	return ok
}

// Available lists the names of renderers that passed their probe.
func (c *Chain) Available(ctx context.Context) []string {
	var names []string
	for i, r := range c.Renderers {
		if c.available(ctx, i) {
			names = append(names, r.Name())
		}
	}
	return names
}

// Render runs job through the chain and returns the name of the renderer
// that produced the output.
func (c *Chain) Render(ctx context.Context, job Job) (string, error) {
	rerr := &RenderError{Theme: job.Theme}

	for i, r := range c.Renderers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !c.available(ctx, i) {
			continue
		}

		err := r.Render(ctx, job)
		if err == nil {
			return r.Name(), nil
		}
		log.Printf("[Render] ⚠️ %s failed for %s: %v", r.Name(), job.Theme, err)
		rerr.Attempts = append(rerr.Attempts, Attempt{Renderer: r.Name(), Err: err})
	}
	return "", rerr
}
