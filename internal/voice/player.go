// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package voice

import (
	"context"
	"sync"
)

// Controller serialises playback over a Backend. At most one utterance
// plays at a time: starting a new one cancels whatever is playing first.
type Controller struct {
	backend Backend

	mu      sync.Mutex
	cancel  context.CancelFunc
	gen     uint64
	playing string // utterance ID, empty when idle
}

// NewController wraps backend with single-playback semantics.
func NewController(backend Backend) *Controller {
	return &Controller{backend: backend}
}

// Play speaks u, preempting any active playback. It blocks until the
// utterance finishes, is preempted, or ctx is cancelled. Preemption is
// not an error.
func (c *Controller) Play(ctx context.Context, u *Utterance) error {
	playCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.backend.Stop()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.playing = u.ID
	c.mu.Unlock()

	err := c.backend.Speak(playCtx, u)

	c.mu.Lock()
	// Only clear state if no newer playback has taken over.
	if c.gen == gen {
		c.cancel = nil
		c.playing = ""
	}
	c.mu.Unlock()
	cancel()

	if playCtx.Err() != nil {
		return nil
	}
	return err
}

// Stop halts the active playback. Safe to call when nothing is playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.backend.Stop()
		c.cancel = nil
		c.playing = ""
	}
}

// IsPlaying reports whether an utterance is currently active.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Playing returns the ID of the active utterance, or "" when idle.
func (c *Controller) Playing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
