// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/pdiddy/thought-engine/internal/store"
)

// withTempDB points the store at a throwaway database for one test.
func withTempDB(t *testing.T) {
	t.Helper()
	viper.Set("store.db_path", filepath.Join(t.TempDir(), "thoughts.db"))
	t.Cleanup(func() { viper.Set("store.db_path", "") })
}

func TestListWritesToCommandWriter(t *testing.T) {
	withTempDB(t)

	var out bytes.Buffer
	listCmd.SetOut(&out)
	defer listCmd.SetOut(nil)

	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !strings.Contains(out.String(), "No thoughts yet") {
		t.Errorf("empty-store message not on the command writer: %q", out.String())
	}

	// Seed a record, then check both the table and JSON paths land on
	// the writer.
	st, closeStore, err := openStore(listCmd)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if err := store.Seed(st); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	closeStore()

	out.Reset()
	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !strings.Contains(out.String(), "ID") {
		t.Errorf("table header not on the command writer: %q", out.String())
	}

	out.Reset()
	listCmd.Flags().Set("json", "true")
	defer listCmd.Flags().Set("json", "false")
	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList --json: %v", err)
	}
	if !strings.Contains(out.String(), "raw_text") {
		t.Errorf("JSON output not on the command writer: %q", out.String())
	}
}
