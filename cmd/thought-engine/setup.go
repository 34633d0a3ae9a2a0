// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/thought-engine/internal/expand"
	"github.com/pdiddy/thought-engine/internal/llm"
	"github.com/pdiddy/thought-engine/internal/pipeline"
	"github.com/pdiddy/thought-engine/internal/rate"
	"github.com/pdiddy/thought-engine/internal/secrets"
	"github.com/pdiddy/thought-engine/internal/store"
	"github.com/pdiddy/thought-engine/internal/voice"
	"github.com/pdiddy/thought-engine/pkg/types"
)

const (
	defaultDBPath  = "thoughts.db"
	defaultTimeout = 30 * time.Second
)

// openStore opens the record store: --db flag first, then config, then
// the default path next to the working directory.
func openStore(cmd *cobra.Command) (store.Store, func(), error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("store.db_path")
	}
	if path == "" {
		path = defaultDBPath
	}

	st, err := store.NewSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return st, func() { st.Close() }, nil
}

// groqCompleter builds the remote LLM client from the loaded secrets and
// config. Returns nil when no usable credential is present; stages then
// run on their local fallbacks.
func groqCompleter() llm.Completer {
	key := secrets.Value(loadedSecrets, "groq-api-key", viper.GetString("ai.api_key"))
	if key == "" {
		return nil
	}
	return llm.NewClient(
		types.AIConfig{
			BaseURL: viper.GetString("ai.base_url"),
			Model:   viper.GetString("ai.model"),
			APIKey:  key,
		},
		types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
	)
}

// newSynthesizer builds the voice stage over the local speech engine.
// An absent engine is fine; synthesis then reports failure and the
// pipeline continues without audio.
func newSynthesizer() *voice.Synthesizer {
	return voice.NewSynthesizer(voice.NewLocal(), voice.PrepareOptions{
		Voice:    viper.GetString("voice.voice"),
		Rate:     viper.GetInt("voice.rate"),
		Language: viper.GetString("voice.language"),
	})
}

// newPipeline assembles the full processing pipeline for a store.
func newPipeline(cmd *cobra.Command, st store.Store) *pipeline.Pipeline {
	completer := groqCompleter()
	return pipeline.New(
		st,
		expand.New(completer, types.ExpansionConfig{}),
		rate.New(completer, types.RatingConfig{}),
		newSynthesizer(),
		newLogger(cmd),
	)
}
