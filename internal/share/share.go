// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package share builds outbound sharing links for a processed thought.
// Links are pre-filled submission URLs the user opens in a browser; there
// is no API posting and no credential handling here.
package share

import (
	"fmt"
	"net/url"

	"github.com/pdiddy/thought-engine/pkg/types"
)

const (
	subreddit = "Showerthoughts"

	// redditTitleMax is Reddit's post title limit.
	redditTitleMax = 300

	// tweetMax is X's post length limit.
	tweetMax = 280
)

// RedditURL returns a pre-filled Reddit submit link for t. The raw
// thought becomes the title, bounded to the platform limit, and the
// expanded text (when present) becomes the self-post body.
func RedditURL(t types.Thought) string {
	title := clip(t.RawText, redditTitleMax)

	q := url.Values{}
	q.Set("title", title)
	if t.ExpandedText != "" {
		q.Set("text", t.ExpandedText)
	}
	return fmt.Sprintf("https://reddit.com/r/%s/submit?%s", subreddit, q.Encode())
}

// TweetURL returns a pre-filled X intent link quoting the raw thought.
func TweetURL(t types.Thought) string {
	text := clip(fmt.Sprintf("%q - expanded by thought-engine", t.RawText), tweetMax)

	q := url.Values{}
	q.Set("text", text)
	return "https://twitter.com/intent/tweet?" + q.Encode()
}

// Permalink returns a deterministic offline permalink for t, for demos
// without a live posting backend.
func Permalink(t types.Thought) string {
	return fmt.Sprintf("https://reddit.com/r/%s/comments/mockpost_%s", subreddit, t.ID)
}

// clip bounds s to max runes.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
