// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand turns a raw thought into long-form content. A remote
// chat-completion strategy is tried first; on any failure, empty response,
// or absent configuration a deterministic mode-keyed template takes over,
// so expansion always succeeds and always returns non-empty text.
package expand

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/thought-engine/internal/fallback"
	"github.com/pdiddy/thought-engine/internal/llm"
	"github.com/pdiddy/thought-engine/pkg/types"
)

const (
	defaultMaxTokens   = 800
	defaultTemperature = 0.8
)

// Generator produces expanded text for raw thoughts.
type Generator struct {
	completer   llm.Completer
	maxTokens   int
	temperature float64
}

// New builds a Generator. A nil completer disables the remote strategy.
func New(completer llm.Completer, cfg types.ExpansionConfig) *Generator {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Generator{
		completer:   completer,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Expand returns long-form content for rawText in the given mode. It never
// fails: every remote error routes to the local template.
func (g *Generator) Expand(ctx context.Context, rawText string, mode types.ExpansionMode) string {
	available := g.completer != nil && g.completer.Configured()

	expanded, _ := fallback.Try(ctx, available,
		func(ctx context.Context) (string, error) {
			return g.remote(ctx, rawText, mode)
		},
		func(s string) bool { return s != "" },
		func() string { return Template(rawText, mode) },
	)
	return expanded
}

// remote asks the completion API for an expansion and returns it trimmed.
func (g *Generator) remote(ctx context.Context, rawText string, mode types.ExpansionMode) (string, error) {
	text, err := g.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt(mode)},
		{Role: "user", Content: fmt.Sprintf("Please expand on this shower thought: %q", rawText)},
	}, llm.Options{MaxTokens: g.maxTokens, Temperature: g.temperature})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Template renders the deterministic local expansion for mode. An unknown
// mode renders the essay template.
func Template(rawText string, mode types.ExpansionMode) string {
	var buf bytes.Buffer
	// Execute cannot fail here: the data is a fixed struct of strings.
	fallbackTemplate(mode).Execute(&buf, struct{ RawText string }{RawText: rawText})
	return buf.String()
}
