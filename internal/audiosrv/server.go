// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audiosrv serves server-side audio generation over HTTP. It
// fronts three vendor backends (ElevenLabs, Tavus, Azure Speech) behind
// one POST endpoint and normalizes their failure modes into a JSON error
// envelope with a status reflecting the failure class.
package audiosrv

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// GenerateRequest is the POST /generate-audio body.
type GenerateRequest struct {
	Text    string `json:"text"`
	Service string `json:"service"`
	VoiceID string `json:"voice_id,omitempty"`
}

// generateResult is what a backend produces: either raw audio bytes or a
// URL to a generated asset (job-based backends).
type generateResult struct {
	audio    []byte
	audioURL string
}

// apiError carries the HTTP status a backend failure maps to.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string { return e.msg }

func errorf(status int, format string, args ...any) *apiError {
	return &apiError{status: status, msg: fmt.Sprintf(format, args...)}
}

// Server handles audio generation requests.
type Server struct {
	cfg    types.AudioServerConfig
	client *http.Client
	log    zerolog.Logger
}

// New builds a Server from cfg. The HTTP client timeout follows the
// config; zero means no client-side timeout (Tavus jobs run for minutes).
func New(cfg types.AudioServerConfig, log zerolog.Logger) *Server {
	if cfg.AzureRegion == "" {
		cfg.AzureRegion = "eastus"
	}
	return &Server{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// Handler returns the HTTP routing for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate-audio", s.handleGenerate)
	return mux
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8090"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("audio server listening")
	return srv.ListenAndServe()
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errorf(http.StatusBadRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, errorf(http.StatusBadRequest, "text is required"))
		return
	}

	log := s.log.With().Str("service", req.Service).Int("text_len", len(req.Text)).Logger()

	var (
		res *generateResult
		err error
	)
	switch types.AudioBackend(req.Service) {
	case types.AudioElevenLabs:
		res, err = s.elevenLabs(r.Context(), req.Text, req.VoiceID)
	case types.AudioTavus:
		res, err = s.tavus(r.Context(), req.Text)
	case types.AudioAzure:
		res, err = s.azure(r.Context(), req.Text, req.VoiceID)
	default:
		s.writeError(w, errorf(http.StatusBadRequest, "invalid service specified"))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("audio generation failed")
		s.writeError(w, err)
		return
	}

	if res.audioURL != "" {
		log.Info().Str("audio_url", res.audioURL).Msg("audio generated")
		s.writeJSON(w, http.StatusOK, map[string]string{"audio_url": res.audioURL})
		return
	}

	log.Info().Int("bytes", len(res.audio)).Msg("audio generated")
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(res.audio)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ae, ok := err.(*apiError); ok {
		status = ae.status
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// clip bounds text to a backend's character limit.
func clip(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
