// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audiosrv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Tavus job parameters. The base URL and poll delay are overridden in
// tests.
var (
	tavusBaseURL   = "https://tavusapi.com"
	tavusPollDelay = 10 * time.Second
)

const (
	tavusDefaultReplica = "r783537ef5"
	tavusTextMax        = 500
	tavusMaxPolls       = 20
)

type tavusCreateRequest struct {
	Script     string         `json:"script"`
	ReplicaID  string         `json:"replica_id"`
	VideoName  string         `json:"video_name"`
	Properties map[string]any `json:"properties"`
}

type tavusVideo struct {
	VideoID     string `json:"video_id"`
	Status      string `json:"status"`
	DownloadURL string `json:"download_url"`
}

// tavus generates audio through Tavus's job-based video API: create a
// video, then poll with a fixed delay until it completes, fails, or the
// attempt budget runs out. Exhausting the budget maps to 408.
func (s *Server) tavus(ctx context.Context, text string) (*generateResult, error) {
	if s.cfg.TavusAPIKey == "" {
		return nil, errorf(http.StatusInternalServerError, "tavus api key not configured")
	}

	videoID, err := s.tavusCreate(ctx, clip(text, tavusTextMax))
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < tavusMaxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, errorf(http.StatusInternalServerError, "cancelled while polling tavus: %v", ctx.Err())
		case <-time.After(tavusPollDelay):
		}

		video, err := s.tavusStatus(ctx, videoID)
		if err != nil {
			return nil, err
		}

		switch video.Status {
		case "completed":
			if video.DownloadURL != "" {
				return &generateResult{audioURL: video.DownloadURL}, nil
			}
		case "failed":
			return nil, errorf(http.StatusInternalServerError, "tavus video generation failed")
		}
	}

	return nil, errorf(http.StatusRequestTimeout, "tavus video generation timed out")
}

func (s *Server) tavusCreate(ctx context.Context, script string) (string, error) {
	body, err := json.Marshal(tavusCreateRequest{
		Script:    script,
		ReplicaID: tavusDefaultReplica,
		VideoName: fmt.Sprintf("thought_%d", time.Now().UnixMilli()),
		Properties: map[string]any{
			"voice_settings": map[string]any{
				"stability":        0.5,
				"similarity_boost": 0.8,
				"style":            0.0,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		tavusBaseURL+"/v2/videos", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("x-api-key", s.cfg.TavusAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errorf(http.StatusBadGateway, "tavus request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errorf(resp.StatusCode, "tavus video creation failed: %d", resp.StatusCode)
	}

	var video tavusVideo
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return "", errorf(http.StatusBadGateway, "decoding tavus response: %v", err)
	}
	if video.VideoID == "" {
		return "", errorf(http.StatusBadGateway, "tavus response missing video id")
	}
	return video.VideoID, nil
}

func (s *Server) tavusStatus(ctx context.Context, videoID string) (*tavusVideo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		tavusBaseURL+"/v2/videos/"+videoID, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("x-api-key", s.cfg.TavusAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errorf(http.StatusBadGateway, "tavus status check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorf(http.StatusBadGateway, "tavus status check failed: %d", resp.StatusCode)
	}

	var video tavusVideo
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return nil, errorf(http.StatusBadGateway, "decoding tavus status: %v", err)
	}
	return &video, nil
}
