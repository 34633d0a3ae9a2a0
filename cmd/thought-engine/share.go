// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thought-engine/internal/share"
	"github.com/pdiddy/thought-engine/internal/store"
)

var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Build sharing links for a thought",
	Long: `Share prints pre-filled posting links for a thought: a Reddit submit URL
carrying the raw thought as the title and the expansion as the body, and an
X intent URL quoting the raw thought. Open either in a browser to post.`,
	RunE: runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
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

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Reddit:  %s\n", share.RedditURL(thought))
	fmt.Fprintf(w, "X:       %s\n", share.TweetURL(thought))
	return nil
}
