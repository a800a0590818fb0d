// Package render paces the presentation of a streaming response. The
// provider contract is "every chunk, in order, as soon as available"; redraw
// pacing is a presentation concern layered on top, which is what the
// Coalescer does: it accumulates chunks, drops redraws that would arrive too
// close together or while a redraw is still in progress, and guarantees one
// final authoritative redraw of the complete text.
package render

import (
	"strings"
	"sync"
	"time"
)

// DefaultInterval is the minimum time between two partial renders. It bounds
// redraw frequency only; correctness never depends on it.
const DefaultInterval = 100 * time.Millisecond

// state of the redraw machine. Transitions: idle → rendering → idle on every
// attempted redraw; stopped is terminal.
type state int

const (
	stateIdle state = iota
	stateRendering
	stateStopped
)

// RenderFunc redraws the full accumulated text. Partial-render failures are
// swallowed (a skipped frame is invisible); failure of the final render is
// reported by Flush.
type RenderFunc func(full string) error

// Coalescer throttles intermediate renders of an accumulating response.
// Methods are safe for concurrent use.
type Coalescer struct {
	mu         sync.Mutex
	render     RenderFunc
	interval   time.Duration
	now        func() time.Time
	buffer     strings.Builder
	lastRender time.Time
	state      state
}

// Option customizes a Coalescer.
type Option func(*Coalescer)

// WithInterval overrides the minimum delay between partial renders.
func WithInterval(interval time.Duration) Option {
	return func(c *Coalescer) { c.interval = interval }
}

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coalescer) { c.now = now }
}

// New returns a Coalescer delivering to render, which must not be nil.
func New(render RenderFunc, options ...Option) *Coalescer {
	c := &Coalescer{
		render:   render,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Write appends one chunk and redraws when allowed: never while a redraw is
// already in progress, never sooner than the interval since the previous
// redraw, and never after Stop. A skipped redraw is not lost work: the
// chunk stays in the buffer and the next permitted redraw (or Flush) shows
// it.
func (c *Coalescer) Write(chunk string) {
	c.mu.Lock()

	if c.state == stateStopped {
		c.mu.Unlock()
		return
	}

	c.buffer.WriteString(chunk)

	if c.state == stateRendering || c.now().Sub(c.lastRender) < c.interval {
		c.mu.Unlock()
		return
	}

	c.state = stateRendering
	c.lastRender = c.now()
	full := c.buffer.String()
	c.mu.Unlock()

	// Redraw outside the lock so a slow render cannot block Write callers.
	_ = c.render(full)

	c.mu.Lock()
	if c.state == stateRendering {
		c.state = stateIdle
	}
	c.mu.Unlock()
}

// Flush performs the final authoritative render of the complete text. It
// runs regardless of interval pacing and must be called once streaming is
// known to be complete. After Stop it is a no-op.
func (c *Coalescer) Flush() error {
	c.mu.Lock()
	if c.state == stateStopped {
		c.mu.Unlock()
		return nil
	}
	full := c.buffer.String()
	c.mu.Unlock()

	return c.render(full)
}

// Stop marks the caller as no longer interested: subsequent Write and Flush
// calls do nothing. Stop does not abort the producing stream; cancel the
// generation context for that.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	c.state = stateStopped
	c.mu.Unlock()
}

// Text returns the accumulated response so far.
func (c *Coalescer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.String()
}
