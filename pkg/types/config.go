// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "thought-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the chat-completion API.
type AIConfig struct {
	// BaseURL is the OpenAI-compatible API root
	// (default "https://api.groq.com/openai/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier (e.g. "llama3-8b-8192").
	Model string `json:"model" yaml:"model"`

	// APIKey is the bearer credential. An empty or placeholder value means
	// the remote capability is not configured and fallbacks are used.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ExpansionConfig holds settings for the expansion stage.
type ExpansionConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// MaxTokens bounds the generated expansion (default 800).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling variety (default 0.8).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// RatingConfig holds settings for the rating stage.
type RatingConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// MaxTokens bounds the classification response; the tiny default (10)
	// forces single-word output.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling variety (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// VoiceConfig holds settings for local speech synthesis.
type VoiceConfig struct {
	// Voice names a preferred voice; empty selects the best available.
	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`

	// Rate is the speaking rate in words per minute (default 175).
	Rate int `json:"rate" yaml:"rate"`

	// Language is the preferred voice language prefix (default "en").
	Language string `json:"language" yaml:"language"`
}

// AudioBackend identifies a server-side audio generation vendor.
type AudioBackend string

const (
	AudioElevenLabs AudioBackend = "elevenlabs"
	AudioTavus      AudioBackend = "tavus"
	AudioAzure      AudioBackend = "azure"
)

// AudioServerConfig holds settings for the server-side audio generation endpoint.
type AudioServerConfig struct {
	HTTPConfig `yaml:",inline"`

	// Addr is the listen address (default ":8090").
	Addr string `json:"addr" yaml:"addr"`

	// ElevenLabsAPIKey authenticates to the ElevenLabs TTS API.
	ElevenLabsAPIKey string `json:"elevenlabs_api_key,omitempty" yaml:"elevenlabs_api_key,omitempty"`

	// TavusAPIKey authenticates to the Tavus video API.
	TavusAPIKey string `json:"tavus_api_key,omitempty" yaml:"tavus_api_key,omitempty"`

	// AzureSpeechKey authenticates to the Azure Speech service.
	AzureSpeechKey string `json:"azure_speech_key,omitempty" yaml:"azure_speech_key,omitempty"`

	// AzureRegion selects the Azure Speech region (default "eastus").
	AzureRegion string `json:"azure_region" yaml:"azure_region"`
}

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	// DBPath is the SQLite database file for the persistent store. Empty
	// selects the in-memory store.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Expansion   ExpansionConfig   `json:"expansion" yaml:"expansion"`
	Rating      RatingConfig      `json:"rating" yaml:"rating"`
	Voice       VoiceConfig       `json:"voice" yaml:"voice"`
	AudioServer AudioServerConfig `json:"audio_server" yaml:"audio_server"`
	Store       StoreConfig       `json:"store" yaml:"store"`
}
