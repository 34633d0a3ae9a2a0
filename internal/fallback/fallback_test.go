// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fallback

import (
	"context"
	"fmt"
	"testing"
)

func TestTry(t *testing.T) {
	local := func() string { return "local" }
	accept := func(s string) bool { return s != "" }

	tests := []struct {
		name       string
		available  bool
		remote     func(context.Context) (string, error)
		valid      func(string) bool
		want       string
		wantRemote bool
	}{
		{
			name:       "remote succeeds",
			available:  true,
			remote:     func(context.Context) (string, error) { return "remote", nil },
			valid:      accept,
			want:       "remote",
			wantRemote: true,
		},
		{
			name:      "capability unavailable skips remote",
			available: false,
			remote: func(context.Context) (string, error) {
				t.Fatal("remote called despite unavailable capability")
				return "", nil
			},
			valid: accept,
			want:  "local",
		},
		{
			name:      "remote error falls back",
			available: true,
			remote:    func(context.Context) (string, error) { return "", fmt.Errorf("network down") },
			valid:     accept,
			want:      "local",
		},
		{
			name:      "invalid result falls back",
			available: true,
			remote:    func(context.Context) (string, error) { return "garbage", nil },
			valid:     func(s string) bool { return s == "remote" },
			want:      "local",
		},
		{
			name:      "panicking remote falls back",
			available: true,
			remote:    func(context.Context) (string, error) { panic("backend bug") },
			valid:     accept,
			want:      "local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usedRemote := Try(context.Background(), tt.available, tt.remote, tt.valid, local)
			if got != tt.want {
				t.Errorf("Try = %q, want %q", got, tt.want)
			}
			if usedRemote != tt.wantRemote {
				t.Errorf("usedRemote = %v, want %v", usedRemote, tt.wantRemote)
			}
		})
	}
}
