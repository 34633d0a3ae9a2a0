// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences a submitted thought through expansion, voice
// synthesis, and rating. Stages run strictly in order, each persisting its
// output before the next starts, so a concurrent reader of the store sees
// progressively more complete records and never a regression. A stage
// failure degrades the record instead of failing the run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/thought-engine/internal/store"
	"github.com/pdiddy/thought-engine/internal/voice"
	"github.com/pdiddy/thought-engine/pkg/types"
)

// Expander produces expanded prose from raw text. Always succeeds.
type Expander interface {
	Expand(ctx context.Context, rawText string, mode types.ExpansionMode) string
}

// Rater classifies expanded text. Always succeeds.
type Rater interface {
	Rate(ctx context.Context, expandedText string) types.ValueMeter
}

// Synthesizer prepares a spoken rendering and reports the outcome as a
// structured result rather than an error.
type Synthesizer interface {
	Synthesize(text string) voice.Result
}

// Pipeline orchestrates the three stages against one record store.
type Pipeline struct {
	store  store.Store
	expand Expander
	rate   Rater
	synth  Synthesizer
	log    zerolog.Logger
}

// New assembles a Pipeline. synth may be nil when voice is disabled; the
// voice stage is then skipped and the record carries no voice reference.
func New(st store.Store, expander Expander, rater Rater, synth Synthesizer, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:  st,
		expand: expander,
		rate:   rater,
		synth:  synth,
		log:    log,
	}
}

// Process creates a record for rawText and runs it through every stage,
// returning the final record. Stage failures never surface as errors: the
// record comes back as complete as the stages managed to make it. The only
// error case is the store refusing the initial create.
//
// Expansion is the exception among the stages: a panicking generator ends
// the run, and the record is returned exactly as created. Every later
// stage consumes the expanded text, so nothing sound can be derived from
// it once expansion truly fails, and a rating or voice reference must
// never appear on a record that has no expansion.
func (p *Pipeline) Process(ctx context.Context, rawText string, mode types.ExpansionMode) (types.Thought, error) {
	record, err := p.store.Create(rawText, mode)
	if err != nil {
		return types.Thought{}, fmt.Errorf("creating record: %w", err)
	}
	log := p.log.With().Str("id", record.ID).Str("mode", string(mode)).Logger()
	log.Info().Msg("pipeline started")

	expanded, ok := p.runExpansion(ctx, &record, rawText, mode, log)
	if !ok {
		log.Warn().Msg("expansion failed, returning record as created")
		return record, nil
	}
	p.runVoice(&record, expanded, log)
	p.runRating(ctx, &record, expanded, log)

	log.Info().
		Bool("expanded", record.ExpandedText != "").
		Bool("voiced", record.VoiceURL != "").
		Str("rating", string(record.ValueMeter)).
		Msg("pipeline finished")
	return record, nil
}

// runExpansion produces and persists the expanded text. The generator
// contract is to always return non-empty text; a panic or an empty result
// reports false and leaves the record untouched. A store write failure
// alone does not end the run: the expansion exists, it just was not
// persisted.
func (p *Pipeline) runExpansion(ctx context.Context, record *types.Thought, rawText string, mode types.ExpansionMode, log zerolog.Logger) (string, bool) {
	expanded, ok := guard(log, "expansion", func() string {
		return p.expand.Expand(ctx, rawText, mode)
	})
	if !ok || expanded == "" {
		return "", false
	}
	p.persist(record, types.ThoughtUpdate{ExpandedText: &expanded}, "expansion", log)
	return expanded, true
}

// runVoice synthesizes speech for text. Failure leaves voice_url unset.
func (p *Pipeline) runVoice(record *types.Thought, text string, log zerolog.Logger) {
	if p.synth == nil {
		log.Debug().Msg("voice disabled")
		return
	}
	res, ok := guard(log, "voice", func() voice.Result {
		return p.synth.Synthesize(text)
	})
	if !ok {
		return
	}
	if !res.Success {
		log.Warn().Str("reason", res.Err).Msg("voice synthesis failed, continuing without audio")
		return
	}
	p.persist(record, types.ThoughtUpdate{VoiceURL: &res.AudioURL}, "voice", log)
}

// runRating classifies text and persists the result.
func (p *Pipeline) runRating(ctx context.Context, record *types.Thought, text string, log zerolog.Logger) {
	rating, ok := guard(log, "rating", func() types.ValueMeter {
		return p.rate.Rate(ctx, text)
	})
	if !ok {
		return
	}
	p.persist(record, types.ThoughtUpdate{ValueMeter: &rating}, "rating", log)
}

// persist applies upd to the record, keeping the in-memory copy in sync
// with the store. A write failure is logged and the stage's output is
// dropped; the pipeline moves on.
func (p *Pipeline) persist(record *types.Thought, upd types.ThoughtUpdate, stage string, log zerolog.Logger) {
	updated, err := p.store.Update(record.ID, upd)
	if err != nil {
		log.Error().Err(err).Str("stage", stage).Msg("persisting stage output failed")
		return
	}
	*record = updated
}

// guard runs fn, converting a panic into a logged no-op so one misbehaving
// stage cannot take down the run.
func guard[T any](log zerolog.Logger, stage string, fn func() T) (out T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stage", stage).Msg("stage panicked")
			ok = false
		}
	}()
	return fn(), true
}
