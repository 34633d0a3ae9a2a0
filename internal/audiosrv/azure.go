// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audiosrv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/thought-engine/internal/httputil"
)

// Azure endpoint builders, overridden in tests.
var (
	azureTokenURL = func(region string) string {
		return fmt.Sprintf("https://%s.api.cognitive.microsoft.com/sts/v1.0/issueToken", region)
	}
	azureSynthURL = func(region string) string {
		return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
	}
)

const (
	azureDefaultVoice = "en-US-AriaNeural"
	azureOutputFormat = "audio-24khz-48kbitrate-mono-mp3"
	azureTextMax      = 1000
)

// azure synthesizes text through Azure Speech: a subscription-key token
// exchange followed by SSML synthesis.
func (s *Server) azure(ctx context.Context, text, voice string) (*generateResult, error) {
	if s.cfg.AzureSpeechKey == "" {
		return nil, errorf(http.StatusInternalServerError, "azure speech key not configured")
	}
	if voice == "" {
		voice = azureDefaultVoice
	}

	token, err := s.azureToken(ctx)
	if err != nil {
		return nil, err
	}

	ssml := buildSSML(clip(text, azureTextMax), voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		azureSynthURL(s.cfg.AzureRegion), strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, errorf(http.StatusBadGateway, "azure tts request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorf(resp.StatusCode, "azure tts request failed: %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorf(http.StatusBadGateway, "reading azure audio: %v", err)
	}
	return &generateResult{audio: audio}, nil
}

// azureToken exchanges the subscription key for a short-lived bearer token.
func (s *Server) azureToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		azureTokenURL(s.cfg.AzureRegion), nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.cfg.AzureSpeechKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errorf(http.StatusBadGateway, "azure token request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errorf(http.StatusUnauthorized, "azure authentication failed: %d", resp.StatusCode)
	}

	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errorf(http.StatusBadGateway, "reading azure token: %v", err)
	}
	return string(token), nil
}

// buildSSML wraps text in the synthesis markup Azure expects, with the
// text XML-escaped.
func buildSSML(text, voice string) string {
	return fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="en-US">`+
			`<voice name="%s"><prosody rate="0%%" pitch="0%%">%s</prosody></voice></speak>`,
		voice, escapeXML(text))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(text string) string {
	return xmlEscaper.Replace(text)
}
