// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop an active playback started by play",
	Long: `Stop signals a running play command to halt its playback. It is safe to
run when nothing is playing.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(playPIDPath())
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing is playing.")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		removePlayPID()
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing is playing.")
		return nil
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		// Stale pidfile from a playback that already ended.
		removePlayPID()
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing is playing.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Playback stopped.")
	return nil
}
