// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/thought-engine/pkg/types"
)

func TestRedditURL(t *testing.T) {
	thought := types.Thought{
		ID:           "t1",
		RawText:      "Maybe fish don't know they're wet & never will",
		ExpandedText: "A longer treatment of the idea.",
	}

	raw := RedditURL(thought)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "reddit.com", u.Host)
	assert.Equal(t, "/r/Showerthoughts/submit", u.Path)

	q := u.Query()
	assert.Equal(t, thought.RawText, q.Get("title"))
	assert.Equal(t, thought.ExpandedText, q.Get("text"))
}

func TestRedditURLWithoutExpansion(t *testing.T) {
	u, err := url.Parse(RedditURL(types.Thought{RawText: "short one"}))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "short one", q.Get("title"))
	assert.False(t, q.Has("text"))
}

func TestRedditURLClipsTitle(t *testing.T) {
	long := strings.Repeat("w", 400)
	u, err := url.Parse(RedditURL(types.Thought{RawText: long}))
	require.NoError(t, err)
	assert.Len(t, u.Query().Get("title"), 300)
}

func TestTweetURL(t *testing.T) {
	raw := TweetURL(types.Thought{RawText: "the ocean is just wet space"})
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "twitter.com", u.Host)
	assert.Equal(t, "/intent/tweet", u.Path)

	text := u.Query().Get("text")
	assert.Contains(t, text, "the ocean is just wet space")
	assert.LessOrEqual(t, len([]rune(text)), 280)
}

func TestTweetURLClips(t *testing.T) {
	long := strings.Repeat("x", 400)
	u, err := url.Parse(TweetURL(types.Thought{RawText: long}))
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(u.Query().Get("text"))), 280)
}

func TestPermalink(t *testing.T) {
	got := Permalink(types.Thought{ID: "abc-123"})
	assert.Equal(t, "https://reddit.com/r/Showerthoughts/comments/mockpost_abc-123", got)
}
