// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: groq-api-key, elevenlabs-api-key, azure-speech-key, tavus-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// placeholders are values that count as "not configured" even when present.
// The sample config ships with these so a fresh checkout works offline.
var placeholders = map[string]bool{
	"your_groq_api_key_here":       true,
	"your_elevenlabs_api_key_here": true,
	"your_azure_speech_key_here":   true,
	"your_tavus_api_key_here":      true,
}

// Value returns the secret for key, or fallback when the secret is absent
// or a known placeholder. A placeholder fallback is also rejected.
func Value(secrets map[string]string, key, fallback string) string {
	if fallback != "" && !placeholders[fallback] {
		return fallback
	}
	if v, ok := secrets[key]; ok && !placeholders[v] {
		return v
	}
	return ""
}
