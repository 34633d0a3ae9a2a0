// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the entities and configuration shared across
// pipeline stages.
package types

import "time"

// ExpansionMode selects the long-form style a raw thought is expanded into.
type ExpansionMode string

const (
	ModeEssay           ExpansionMode = "essay"
	ModeStartupPitch    ExpansionMode = "startup_pitch"
	ModeRapVerse        ExpansionMode = "rap_verse"
	ModeCounterArgument ExpansionMode = "counter_argument"
)

// ValidModes lists every accepted expansion mode.
var ValidModes = []ExpansionMode{ModeEssay, ModeStartupPitch, ModeRapVerse, ModeCounterArgument}

// IsValid reports whether m is one of the accepted expansion modes.
func (m ExpansionMode) IsValid() bool {
	for _, v := range ValidModes {
		if m == v {
			return true
		}
	}
	return false
}

// ValueMeter is the quality tier assigned to an expanded thought.
type ValueMeter string

const (
	MeterUnicorn  ValueMeter = "unicorn"
	MeterSeedling ValueMeter = "seedling"
	MeterTrash    ValueMeter = "trash"
)

// IsValid reports whether v is one of the three quality tiers.
func (v ValueMeter) IsValid() bool {
	return v == MeterUnicorn || v == MeterSeedling || v == MeterTrash
}

// MaxRawTextLen bounds the user-supplied thought text. Enforced at the
// CLI boundary, not inside the pipeline.
const MaxRawTextLen = 500

// Thought is the central record produced and enriched by the pipeline.
// RawText and ModeSelected are immutable after creation; the optional
// fields are filled in by successive pipeline stages, and a record is
// displayable at every intermediate state.
type Thought struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id" yaml:"id"`

	// RawText is the user-supplied source string.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// ModeSelected determines the expansion strategy and fallback template.
	ModeSelected ExpansionMode `json:"mode_selected" yaml:"mode_selected"`

	// CreatedAt orders records newest-first in listings.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// ExpandedText is the long-form content; empty until expansion completes.
	ExpandedText string `json:"expanded_text,omitempty" yaml:"expanded_text,omitempty"`

	// VoiceURL references a playable voice rendering. A "speech-ready:"
	// scheme marks a prepared utterance that must be triggered
	// imperatively; other schemes denote directly playable assets.
	VoiceURL string `json:"voice_url,omitempty" yaml:"voice_url,omitempty"`

	// ValueMeter is the quality tier; empty until rating completes.
	ValueMeter ValueMeter `json:"value_meter,omitempty" yaml:"value_meter,omitempty"`
}

// ThoughtUpdate carries a partial update for a stored thought. Nil fields
// are left untouched; set fields overwrite (last write wins per field).
type ThoughtUpdate struct {
	ExpandedText *string
	VoiceURL     *string
	ValueMeter   *ValueMeter
}
