// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored thoughts, newest first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	thoughts, err := st.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(thoughts)
	}

	if len(thoughts) == 0 {
		fmt.Fprintln(w, "No thoughts yet. Submit one with: thought-engine submit \"...\"")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-16s  %-8s  %s\n",
		"ID", "Created", "Mode", "Rating", "Thought")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, t := range thoughts {
		fmt.Fprintf(w, "%-36s  %-16s  %-16s  %-8s  %s\n",
			t.ID,
			t.CreatedAt.Local().Format("Jan 02 15:04"),
			t.ModeSelected,
			meterLabel(t.ValueMeter),
			clipText(t.RawText, 40))
	}
	return nil
}

func meterLabel(m types.ValueMeter) string {
	if m == "" {
		return "-"
	}
	return string(m)
}

func clipText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// printThought writes a full record in the detail format shared by
// submit and show.
func printThought(w io.Writer, t types.Thought) {
	fmt.Fprintf(w, "ID:       %s\n", t.ID)
	fmt.Fprintf(w, "Created:  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Mode:     %s\n", t.ModeSelected)
	fmt.Fprintf(w, "Rating:   %s\n", meterLabel(t.ValueMeter))
	if t.VoiceURL != "" {
		fmt.Fprintf(w, "Voice:    %s\n", t.VoiceURL)
	}
	fmt.Fprintf(w, "\n%s\n", t.RawText)
	if t.ExpandedText != "" {
		fmt.Fprintf(w, "\n%s\n", t.ExpandedText)
	}
}
