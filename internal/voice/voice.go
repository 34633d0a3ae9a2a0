// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package voice prepares and plays spoken renderings of expanded thoughts.
//
// Synthesis is two-phase by design: the pipeline prepares an utterance once
// and records a speech-ready reference, and a consumer triggers audible
// playback later, any number of times, through the Controller. The package
// delegates to exactly one capability-checked Backend; the only shipped
// backend drives a local speech engine.
package voice

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Common errors.
var (
	ErrUnsupported = errors.New("speech backend unsupported")
	ErrNoVoices    = errors.New("no voices available")
	ErrNotPrepared = errors.New("no prepared utterance for reference")
)

// ReadyScheme prefixes references to prepared-but-not-yet-playing
// utterances. Such a reference is not a static asset: playback must be
// triggered imperatively through the Controller. Other schemes (blob:,
// http:) denote directly playable assets.
const ReadyScheme = "speech-ready"

// MaxTextLen bounds synthesized text; longer input is truncated with an
// ellipsis marker. Synthesis cost and latency bound.
const MaxTextLen = 500

// Voice describes one available voice.
type Voice struct {
	// Name identifies the voice (e.g. "Samantha", "en-gb").
	Name string

	// Language is a BCP 47-ish language tag (e.g. "en-US").
	Language string

	// Local reports whether the voice is hosted locally rather than
	// fetched from a network service.
	Local bool
}

// PrepareOptions tunes utterance preparation.
type PrepareOptions struct {
	// Voice names a requested voice; empty selects the best available.
	Voice string

	// Rate is the speaking rate in words per minute; 0 uses the backend default.
	Rate int

	// Language is the preferred language prefix for voice selection.
	Language string
}

// Utterance is a prepared speech act, ready to be spoken on demand.
type Utterance struct {
	// ID is the token embedded in the speech-ready reference.
	ID string

	// Text is the (possibly truncated) text to speak.
	Text string

	// Voice is the selected voice.
	Voice Voice

	// args is the backend command invocation, set by the local backend.
	args []string
}

// Backend is the pluggable speech strategy. Implementations must be safe
// for use from multiple goroutines.
type Backend interface {
	// Name returns the backend identifier (e.g. "espeak", "say").
	Name() string

	// Supported reports whether the backend can run in this environment.
	Supported() bool

	// Voices returns the available voices. Order is not significant;
	// callers rank with BestVoices.
	Voices() ([]Voice, error)

	// Prepare builds an utterance without speaking it.
	Prepare(text string, opts PrepareOptions) (*Utterance, error)

	// Speak pronounces u and blocks until the utterance ends naturally,
	// fails, or ctx is cancelled.
	Speak(ctx context.Context, u *Utterance) error

	// Stop aborts any in-flight Speak. Safe to call when idle.
	Stop()
}

// preferredVendors rank named vendors ahead of unrecognized ones when
// choosing a voice.
var preferredVendors = []string{"Google", "Microsoft"}

// BestVoices ranks voices by a deterministic preference order: language
// match first, then named-vendor preference, then locally-hosted over
// networked voices, then name for a stable final order.
func BestVoices(voices []Voice, language string) []Voice {
	ranked := make([]Voice, len(voices))
	copy(ranked, voices)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		am, bm := matchesLanguage(a, language), matchesLanguage(b, language)
		if am != bm {
			return am
		}
		av, bv := vendorRank(a.Name), vendorRank(b.Name)
		if av != bv {
			return av < bv
		}
		if a.Local != b.Local {
			return a.Local
		}
		return a.Name < b.Name
	})
	return ranked
}

func matchesLanguage(v Voice, language string) bool {
	if language == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(v.Language), strings.ToLower(language))
}

func vendorRank(name string) int {
	for i, vendor := range preferredVendors {
		if strings.Contains(name, vendor) {
			return i
		}
	}
	return len(preferredVendors)
}

// Result is the structured outcome of a synthesis attempt. Failures are
// reported here, never as errors: voice failure must not break the pipeline.
type Result struct {
	Success  bool
	AudioURL string
	Err      string
}

// Synthesizer prepares utterances and hands out speech-ready references.
// Prepared utterances stay registered so the Controller can play them later.
type Synthesizer struct {
	backend Backend
	opts    PrepareOptions

	mu       sync.Mutex
	prepared map[string]*Utterance
}

// NewSynthesizer builds a Synthesizer over backend with default prepare
// options applied to every utterance.
func NewSynthesizer(backend Backend, opts PrepareOptions) *Synthesizer {
	return &Synthesizer{
		backend:  backend,
		opts:     opts,
		prepared: make(map[string]*Utterance),
	}
}

// Backend returns the wrapped backend.
func (s *Synthesizer) Backend() Backend {
	return s.backend
}

// Synthesize prepares a spoken rendering of text and returns a structured
// result. Input beyond MaxTextLen is truncated with an ellipsis marker.
// An unavailable backend or a preparation failure produces a failure
// result, never an error.
func (s *Synthesizer) Synthesize(text string) Result {
	text = Truncate(text, MaxTextLen)

	if s.backend == nil || !s.backend.Supported() {
		return Result{Success: false, Err: ErrUnsupported.Error()}
	}

	u, err := s.backend.Prepare(text, s.opts)
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.prepared[u.ID] = u
	s.mu.Unlock()

	return Result{Success: true, AudioURL: ReadyScheme + ":" + u.ID}
}

// Prepared returns the registered utterance for a speech-ready reference.
func (s *Synthesizer) Prepared(audioURL string) (*Utterance, bool) {
	token, ok := strings.CutPrefix(audioURL, ReadyScheme+":")
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.prepared[token]
	return u, ok
}

// Truncate bounds text to max characters, appending "..." when cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
