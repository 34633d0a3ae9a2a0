// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// stores returns one of each Store implementation, fresh per test.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "thoughts.db")
	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": s,
	}
}

func TestCreateAndGet(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.Create("why is the sky blue", types.ModeEssay)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.ID == "" {
				t.Error("Create returned empty ID")
			}
			if created.CreatedAt.IsZero() {
				t.Error("Create returned zero CreatedAt")
			}
			if created.ExpandedText != "" || created.VoiceURL != "" || created.ValueMeter != "" {
				t.Errorf("Create set optional fields: %+v", created)
			}

			got, err := st.Get(created.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.RawText != "why is the sky blue" || got.ModeSelected != types.ModeEssay {
				t.Errorf("Get = %+v, want raw text and mode preserved", got)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get unknown id error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	expanded := "a much longer expansion"
	voiceURL := "speech-ready:123"
	meter := types.MeterSeedling

	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			created, err := st.Create("raw", types.ModeRapVerse)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			// First update sets only the expansion.
			got, err := st.Update(created.ID, types.ThoughtUpdate{ExpandedText: &expanded})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if got.ExpandedText != expanded {
				t.Errorf("ExpandedText = %q, want %q", got.ExpandedText, expanded)
			}
			if got.VoiceURL != "" || got.ValueMeter != "" {
				t.Errorf("unset fields modified: %+v", got)
			}

			// Later updates leave earlier fields intact.
			got, err = st.Update(created.ID, types.ThoughtUpdate{VoiceURL: &voiceURL, ValueMeter: &meter})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if got.ExpandedText != expanded {
				t.Errorf("ExpandedText lost by later update: %q", got.ExpandedText)
			}
			if got.VoiceURL != voiceURL || got.ValueMeter != meter {
				t.Errorf("Update = %+v, want voice url and meter set", got)
			}
		})
	}
}

func TestUpdateUnknown(t *testing.T) {
	expanded := "text"
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.Update("no-such-id", types.ThoughtUpdate{ExpandedText: &expanded}); !errors.Is(err, ErrNotFound) {
				t.Errorf("Update unknown id error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, _ := st.Create("thought A", types.ModeEssay)
			time.Sleep(2 * time.Millisecond)
			b, _ := st.Create("thought B", types.ModeEssay)

			got, err := st.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("List len = %d, want 2", len(got))
			}
			if got[0].ID != b.ID || got[1].ID != a.ID {
				t.Errorf("List order = [%s %s], want B before A", got[0].RawText, got[1].RawText)
			}
		})
	}
}

func TestListTieBreakByInsertion(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return ts }
	defer func() { now = prev }()

	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			first, _ := st.Create("first", types.ModeEssay)
			second, _ := st.Create("second", types.ModeEssay)

			got, err := st.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("List len = %d, want 2", len(got))
			}
			if got[0].ID != second.ID || got[1].ID != first.ID {
				t.Errorf("equal timestamps: List order = [%s %s], want later insertion first", got[0].RawText, got[1].RawText)
			}
		})
	}
}

func TestReset(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			st.Create("soon gone", types.ModeEssay)
			if err := st.Reset(); err != nil {
				t.Fatalf("Reset: %v", err)
			}
			got, err := st.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("List after Reset len = %d, want 0", len(got))
			}
		})
	}
}

func TestSeed(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := Seed(st); err != nil {
				t.Fatalf("Seed: %v", err)
			}
			got, err := st.List()
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(defaultSeeds) {
				t.Fatalf("List len = %d, want %d", len(got), len(defaultSeeds))
			}
			for _, th := range got {
				if th.ExpandedText == "" {
					t.Errorf("seed %q has no expansion", th.RawText)
				}
				if !th.ValueMeter.IsValid() {
					t.Errorf("seed %q has meter %q", th.RawText, th.ValueMeter)
				}
			}
			// Seeds are backdated, newest seed first.
			for i := 1; i < len(got); i++ {
				if got[i].CreatedAt.After(got[i-1].CreatedAt) {
					t.Errorf("seed order not newest-first at index %d", i)
				}
			}
		})
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "thoughts.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	created, err := s.Create("survives restarts", types.ModeCounterArgument)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()

	s2, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.RawText != "survives restarts" {
		t.Errorf("RawText = %q after reopen", got.RawText)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v after reopen, want %v", got.CreatedAt, created.CreatedAt)
	}
}
