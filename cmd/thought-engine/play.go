// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/internal/store"
	"github.com/pdiddy/thought-engine/internal/voice"
)

var playCmd = &cobra.Command{
	Use:   "play [id]",
	Short: "Speak a thought's expanded text aloud",
	Long: `Play prepares a spoken rendering of the thought's expanded text (or the
raw text when no expansion exists) through the local speech engine and
plays it. Playback blocks until the utterance finishes; press Enter to
stop it early.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one thought id")
	}

	st, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	thought, err := st.Get(args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no thought with id %q", args[0])
	}
	if err != nil {
		return err
	}

	text := thought.ExpandedText
	if text == "" {
		text = thought.RawText
	}

	synth := newSynthesizer()
	res := synth.Synthesize(text)
	if !res.Success {
		return fmt.Errorf("voice synthesis failed: %s", res.Err)
	}
	u, ok := synth.Prepared(res.AudioURL)
	if !ok {
		return fmt.Errorf("prepared utterance missing for %s", res.AudioURL)
	}

	controller := voice.NewController(synth.Backend())

	// A pidfile lets `thought-engine stop` reach this process from
	// another terminal.
	if err := writePlayPID(); err == nil {
		defer removePlayPID()
	}

	// Enter or an interrupt signal stops playback early.
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		controller.Stop()
	}()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		controller.Stop()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Speaking with voice %s (press Enter to stop)...\n", u.Voice.Name)
	return controller.Play(context.Background(), u)
}

// playPIDPath is the pidfile the play command drops while speaking.
func playPIDPath() string {
	return filepath.Join(os.TempDir(), "thought-engine-play.pid")
}

func writePlayPID() error {
	return os.WriteFile(playPIDPath(), []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func removePlayPID() {
	os.Remove(playPIDPath())
}
