// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the thought-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/thought-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const defaultUserAgent = "thought-engine/0.1"

// rootCmd is the base command for the thought-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "thought-engine",
	Short: "Expand, voice, and rate shower thoughts",
	Long: `thought-engine takes a short raw thought and runs it through a staged
pipeline: an expansion stage turns it into long-form prose in a selected
style, a voice stage prepares a spoken rendering, and a rating stage grades
the result. Every stage degrades gracefully: without API credentials the
pipeline falls back to local templates and a deterministic heuristic.

Thoughts are kept in a local SQLite database. Use submit to run the
pipeline, list/show to browse results, play to hear a thought, share to
build posting links, and serve to run the server-side audio endpoint.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./thought-engine.yaml or ~/.config/thought-engine/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default: thoughts.db)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log pipeline stage detail to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("thought-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "thought-engine"))
		}
	}

	viper.SetEnvPrefix("THOUGHT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger. Quiet by default; --verbose surfaces
// per-stage pipeline events.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
