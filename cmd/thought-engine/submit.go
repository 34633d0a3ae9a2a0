// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/pkg/types"
)

var submitCmd = &cobra.Command{
	Use:   "submit [thought]",
	Short: "Submit a thought and run it through the pipeline",
	Long: `Submit stores a raw thought and runs the full pipeline: expansion into
long-form prose, voice preparation, and quality rating. Each stage's output
is persisted as it completes, and a stage failure degrades the record
instead of aborting the run.

The expansion style is chosen with --mode: essay, startup_pitch, rap_verse,
or counter_argument.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().String("mode", string(types.ModeEssay), "expansion mode (essay, startup_pitch, rap_verse, counter_argument)")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide the thought text to submit")
	}
	rawText := strings.TrimSpace(strings.Join(args, " "))
	if rawText == "" {
		return fmt.Errorf("thought text is empty")
	}
	if len([]rune(rawText)) > types.MaxRawTextLen {
		return fmt.Errorf("thought text exceeds %d characters", types.MaxRawTextLen)
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode := types.ExpansionMode(modeFlag)
	if !mode.IsValid() {
		return fmt.Errorf("invalid mode %q: valid modes are %v", modeFlag, types.ValidModes)
	}

	st, closeStore, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	p := newPipeline(cmd, st)
	thought, err := p.Process(context.Background(), rawText, mode)
	if err != nil {
		return err
	}

	printThought(cmd.OutOrStdout(), thought)
	return nil
}
