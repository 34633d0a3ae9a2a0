// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/thought-engine/internal/audiosrv"
	"github.com/pdiddy/thought-engine/internal/secrets"
	"github.com/pdiddy/thought-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the server-side audio generation endpoint",
	Long: `Serve runs an HTTP server exposing POST /generate-audio, which fronts
the ElevenLabs, Tavus, and Azure Speech APIs. The request selects the
backend; the response is raw audio/mpeg bytes (or a download URL for the
job-based Tavus backend), with failures reported as a JSON error envelope.

Vendor credentials come from .secrets/ (elevenlabs-api-key, tavus-api-key,
azure-speech-key) or config.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8090)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("audio_server.addr")
	}

	cfg := types.AudioServerConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   time.Minute,
			UserAgent: defaultUserAgent,
		},
		Addr:             addr,
		ElevenLabsAPIKey: secrets.Value(loadedSecrets, "elevenlabs-api-key", viper.GetString("audio_server.elevenlabs_api_key")),
		TavusAPIKey:      secrets.Value(loadedSecrets, "tavus-api-key", viper.GetString("audio_server.tavus_api_key")),
		AzureSpeechKey:   secrets.Value(loadedSecrets, "azure-speech-key", viper.GetString("audio_server.azure_speech_key")),
		AzureRegion:      viper.GetString("audio_server.azure_region"),
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	return audiosrv.New(cfg, log).ListenAndServe()
}
