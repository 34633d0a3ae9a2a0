// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a stored thought in full",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(thought)
	}

	printThought(cmd.OutOrStdout(), thought)
	return nil
}
