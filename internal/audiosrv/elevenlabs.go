// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audiosrv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/thought-engine/internal/httputil"
)

// elevenLabsBaseURL is overridden in tests.
var elevenLabsBaseURL = "https://api.elevenlabs.io"

const (
	elevenLabsDefaultVoice = "pNInz6obpgDQGcFmaJgB" // Adam
	elevenLabsModel        = "eleven_monolingual_v1"
	elevenLabsTextMax      = 1000
)

type elevenLabsRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings map[string]any `json:"voice_settings"`
}

// elevenLabs synthesizes text through the ElevenLabs TTS API and returns
// raw MP3 bytes.
func (s *Server) elevenLabs(ctx context.Context, text, voiceID string) (*generateResult, error) {
	if s.cfg.ElevenLabsAPIKey == "" {
		return nil, errorf(http.StatusInternalServerError, "elevenlabs api key not configured")
	}
	if voiceID == "" {
		voiceID = elevenLabsDefaultVoice
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    clip(text, elevenLabsTextMax),
		ModelID: elevenLabsModel,
		VoiceSettings: map[string]any{
			"stability":         0.5,
			"similarity_boost":  0.5,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", elevenLabsBaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.cfg.ElevenLabsAPIKey)

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, errorf(http.StatusBadGateway, "elevenlabs request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorf(resp.StatusCode, "elevenlabs api request failed: %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorf(http.StatusBadGateway, "reading elevenlabs audio: %v", err)
	}
	return &generateResult{audio: audio}, nil
}
