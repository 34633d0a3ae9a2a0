// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo thoughts into the store",
	Long: `Seed loads a small set of fully processed demo thoughts so list and show
have something to display before any real submission. With --file, seeds
are read from a YAML fixtures file instead of the built-in set. --reset
clears the store first.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().String("file", "", "YAML fixtures file to seed from")
	seedCmd.Flags().Bool("reset", false, "clear the store before seeding")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if err := st.Reset(); err != nil {
			return err
		}
	}

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		if err := store.SeedFromFile(st, file); err != nil {
			return err
		}
	} else if err := store.Seed(st); err != nil {
		return err
	}

	thoughts, err := st.List()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded. Store now holds %d thought(s).\n", len(thoughts))
	return nil
}
