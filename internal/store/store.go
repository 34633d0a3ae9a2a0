// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store holds thought records and keeps them queryable at every
// intermediate pipeline state. Two implementations share one interface:
// an in-memory store for single-run use and a SQLite store that persists
// thoughts across CLI invocations.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// ErrNotFound is returned by Get and Update for an unknown thought ID.
var ErrNotFound = errors.New("thought not found")

// Store is the record store contract used by the pipeline and the CLI.
type Store interface {
	// Create allocates an ID and timestamp and stores a record with no
	// optional fields set.
	Create(rawText string, mode types.ExpansionMode) (types.Thought, error)

	// Get returns the record for id, or ErrNotFound.
	Get(id string) (types.Thought, error)

	// Update shallow-merges the set fields of upd into the record and
	// returns the result. The merge is atomic per call: an unknown id
	// returns ErrNotFound with nothing applied.
	Update(id string, upd types.ThoughtUpdate) (types.Thought, error)

	// List returns all records ordered by CreatedAt descending. When
	// timestamps collide the later insertion sorts first.
	List() ([]types.Thought, error)

	// Reset clears all records. Test and demo bootstrapping only.
	Reset() error
}

// now is the clock used for CreatedAt. Tests override it to control
// timestamp collisions.
var now = time.Now

// newID allocates thought IDs. Package-level var for test substitution.
var newID = func() string { return uuid.NewString() }

// Memory is the in-memory Store. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	thoughts map[string]types.Thought
	order    []string // insertion order, for the List tie-break
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{thoughts: make(map[string]types.Thought)}
}

// Create implements Store. It never fails for the in-memory store.
func (m *Memory) Create(rawText string, mode types.ExpansionMode) (types.Thought, error) {
	return m.createAt(rawText, mode, now())
}

func (m *Memory) createAt(rawText string, mode types.ExpansionMode, ts time.Time) (types.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := types.Thought{
		ID:           newID(),
		RawText:      rawText,
		ModeSelected: mode,
		CreatedAt:    ts,
	}
	m.thoughts[t.ID] = t
	m.order = append(m.order, t.ID)
	return t, nil
}

// Get implements Store.
func (m *Memory) Get(id string) (types.Thought, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.thoughts[id]
	if !ok {
		return types.Thought{}, ErrNotFound
	}
	return t, nil
}

// Update implements Store.
func (m *Memory) Update(id string, upd types.ThoughtUpdate) (types.Thought, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.thoughts[id]
	if !ok {
		return types.Thought{}, ErrNotFound
	}
	applyUpdate(&t, upd)
	m.thoughts[id] = t
	return t, nil
}

// List implements Store.
func (m *Memory) List() ([]types.Thought, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pos := make(map[string]int, len(m.order))
	for i, id := range m.order {
		pos[id] = i
	}

	out := make([]types.Thought, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.thoughts[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return pos[out[i].ID] > pos[out[j].ID]
	})
	return out, nil
}

// Reset implements Store.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.thoughts = make(map[string]types.Thought)
	m.order = nil
	return nil
}

// applyUpdate merges the set fields of upd into t. Last write wins per field.
func applyUpdate(t *types.Thought, upd types.ThoughtUpdate) {
	if upd.ExpandedText != nil {
		t.ExpandedText = *upd.ExpandedText
	}
	if upd.VoiceURL != nil {
		t.VoiceURL = *upd.VoiceURL
	}
	if upd.ValueMeter != nil {
		t.ValueMeter = *upd.ValueMeter
	}
}
