// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rate classifies expanded thoughts into quality tiers. A remote
// classifier constrained to single-word output is tried first; anything
// invalid or failing routes to a deterministic word-count heuristic, so
// rating always returns one of the three valid tiers.
package rate

import (
	"context"
	"regexp"
	"strings"

	"github.com/pdiddy/thought-engine/internal/fallback"
	"github.com/pdiddy/thought-engine/internal/llm"
	"github.com/pdiddy/thought-engine/pkg/types"
)

const (
	// defaultMaxTokens is deliberately tiny to force single-word output.
	defaultMaxTokens   = 10
	defaultTemperature = 0.3
)

// rubricPrompt restricts the classifier to exactly one of the three labels.
const rubricPrompt = `You are an expert evaluator of creative content. Rate the following expanded thought on a scale: "unicorn" (exceptional, groundbreaking, highly creative), "seedling" (good, interesting, has potential), or "trash" (poor, unoriginal, low quality). Respond with only one word: unicorn, seedling, or trash.`

// keywordPattern matches the impressive keywords the heuristic rewards.
var keywordPattern = regexp.MustCompile(`revolutionary|breakthrough|innovative|genius|profound|exceptional|brilliant|groundbreaking`)

// Rater assigns quality tiers to expanded text.
type Rater struct {
	completer   llm.Completer
	maxTokens   int
	temperature float64
}

// New builds a Rater. A nil completer disables the remote classifier.
func New(completer llm.Completer, cfg types.RatingConfig) *Rater {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Rater{
		completer:   completer,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Rate classifies expandedText. It never fails: remote errors and
// out-of-enum responses route to the heuristic.
func (r *Rater) Rate(ctx context.Context, expandedText string) types.ValueMeter {
	available := r.completer != nil && r.completer.Configured()

	meter, _ := fallback.Try(ctx, available,
		func(ctx context.Context) (types.ValueMeter, error) {
			return r.remote(ctx, expandedText)
		},
		types.ValueMeter.IsValid,
		func() types.ValueMeter { return Heuristic(expandedText) },
	)
	return meter
}

// remote asks the classifier and normalizes its answer. An out-of-enum
// answer comes back as-is and is rejected by the validity check.
func (r *Rater) remote(ctx context.Context, expandedText string) (types.ValueMeter, error) {
	text, err := r.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: rubricPrompt},
		{Role: "user", Content: "Please rate this expanded thought:\n\n" + expandedText},
	}, llm.Options{MaxTokens: r.maxTokens, Temperature: r.temperature})
	if err != nil {
		return "", err
	}
	return types.ValueMeter(strings.ToLower(strings.TrimSpace(text))), nil
}

// Heuristic is the deterministic local rating: word count plus a check for
// impressive keywords. Over 150 words with a keyword rates unicorn, over
// 80 words rates seedling, anything shorter rates trash.
func Heuristic(expandedText string) types.ValueMeter {
	wordCount := len(strings.Fields(expandedText))
	hasKeyword := keywordPattern.MatchString(strings.ToLower(expandedText))

	switch {
	case wordCount > 150 && hasKeyword:
		return types.MeterUnicorn
	case wordCount > 80:
		return types.MeterSeedling
	default:
		return types.MeterTrash
	}
}
