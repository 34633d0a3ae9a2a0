// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/thought-engine/internal/llm"
	"github.com/pdiddy/thought-engine/pkg/types"
)

type mockCompleter struct {
	configured bool
	text       string
	err        error
}

func (m *mockCompleter) Configured() bool { return m.configured }

func (m *mockCompleter) Complete(_ context.Context, _ []llm.Message, _ llm.Options) (string, error) {
	return m.text, m.err
}

// words builds a text of exactly n words.
func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = "word"
	}
	return strings.Join(out, " ")
}

func TestRateRemote(t *testing.T) {
	tests := []struct {
		name   string
		mock   *mockCompleter
		want   types.ValueMeter
		wantHe bool // expect the heuristic to decide
	}{
		{"accepts valid label", &mockCompleter{configured: true, text: "unicorn"}, types.MeterUnicorn, false},
		{"normalizes case and whitespace", &mockCompleter{configured: true, text: "  Seedling \n"}, types.MeterSeedling, false},
		{"rejects garbage", &mockCompleter{configured: true, text: "definitely a 10/10"}, "", true},
		{"rejects empty", &mockCompleter{configured: true, text: ""}, "", true},
		{"routes errors to heuristic", &mockCompleter{configured: true, err: fmt.Errorf("HTTP 503")}, "", true},
		{"unconfigured uses heuristic", &mockCompleter{configured: false, text: "unicorn"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.mock, types.RatingConfig{})
			text := words(90) // heuristic would say seedling
			got := r.Rate(context.Background(), text)

			want := tt.want
			if tt.wantHe {
				want = Heuristic(text)
			}
			if got != want {
				t.Errorf("Rate = %q, want %q", got, want)
			}
			if !got.IsValid() {
				t.Errorf("Rate returned out-of-enum value %q", got)
			}
		})
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.ValueMeter
	}{
		{"90 words no keyword", words(90), types.MeterSeedling},
		{"160 words with keyword", words(159) + " revolutionary", types.MeterUnicorn},
		{"50 words", words(50), types.MeterTrash},
		{"160 words no keyword", words(160), types.MeterSeedling},
		{"short text with keyword", "a genius idea", types.MeterTrash},
		{"keyword case-insensitive", words(159) + " GROUNDBREAKING", types.MeterUnicorn},
		{"boundary 80 words", words(80), types.MeterTrash},
		{"boundary 81 words", words(81), types.MeterSeedling},
		{"boundary 150 words with keyword", words(149) + " profound", types.MeterSeedling},
		{"boundary 151 words with keyword", words(150) + " profound", types.MeterUnicorn},
		{"empty text", "", types.MeterTrash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Heuristic(tt.text)
			if got != tt.want {
				t.Errorf("Heuristic = %q, want %q", got, tt.want)
			}
			// Deterministic: same text, same tier.
			if again := Heuristic(tt.text); again != got {
				t.Error("Heuristic is not deterministic")
			}
		})
	}
}
