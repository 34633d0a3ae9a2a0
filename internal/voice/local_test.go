// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package voice

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

const sayVoiceList = `Alex                en_US    # Most people recognize me by my voice.
Samantha            en_US    # Hello! My name is Samantha.
Thomas              fr_FR    # Bonjour, je m'appelle Thomas.
Bad Line
`

const espeakVoiceList = `Pty Language Age/Gender VoiceName          File          Other Languages
 5  en-gb          M  english             en            (en 2)
 5  en-us          M  english-us          en-us         (en 3)
 5  fr-fr          M  french              fr
`

func newTestLocal(engine string, voices string) *Local {
	return &Local{
		engine: engine,
		voicesOutput: func(name string, args ...string) (string, error) {
			return voices, nil
		},
		runCommand: func(ctx context.Context, name string, args ...string) error {
			return nil
		},
	}
}

func TestParseSayVoices(t *testing.T) {
	voices := parseSayVoices(sayVoiceList)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[0].Name != "Alex" || voices[0].Language != "en-US" {
		t.Errorf("first voice = %+v", voices[0])
	}
	if voices[2].Name != "Thomas" || voices[2].Language != "fr-FR" {
		t.Errorf("third voice = %+v", voices[2])
	}
	for _, v := range voices {
		if !v.Local {
			t.Errorf("voice %s not marked local", v.Name)
		}
	}
}

func TestParseSayVoicesMultiWordName(t *testing.T) {
	voices := parseSayVoices("Bad News            en_US    # The light you see...\n")
	if len(voices) != 1 {
		t.Fatalf("parsed %d voices, want 1", len(voices))
	}
	if voices[0].Name != "Bad News" {
		t.Errorf("name = %q, want %q", voices[0].Name, "Bad News")
	}
}

func TestParseEspeakVoices(t *testing.T) {
	voices := parseEspeakVoices(espeakVoiceList)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[0].Name != "english" || voices[0].Language != "en-gb" {
		t.Errorf("first voice = %+v", voices[0])
	}
}

func TestLocalPrepare(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		voices   string
		opts     PrepareOptions
		wantArgs []string
	}{
		{
			name:     "say with selected voice and rate",
			engine:   "say",
			voices:   sayVoiceList,
			opts:     PrepareOptions{Voice: "Samantha", Rate: 200, Language: "en"},
			wantArgs: []string{"-v", "Samantha", "-r", "200", "hello"},
		},
		{
			name:     "say default rate",
			engine:   "say",
			voices:   sayVoiceList,
			opts:     PrepareOptions{Language: "en"},
			wantArgs: []string{"-v", "Alex", "-r", "175", "hello"},
		},
		{
			name:     "espeak flags",
			engine:   "espeak-ng",
			voices:   espeakVoiceList,
			opts:     PrepareOptions{Language: "fr"},
			wantArgs: []string{"-v", "french", "-s", "175", "hello"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLocal(tt.engine, tt.voices)
			u, err := l.Prepare("hello", tt.opts)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if u.ID == "" {
				t.Error("utterance has no ID")
			}
			if strings.Join(u.args, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("args = %v, want %v", u.args, tt.wantArgs)
			}
		})
	}
}

func TestLocalPrepareErrors(t *testing.T) {
	unsupported := &Local{}
	if _, err := unsupported.Prepare("hi", PrepareOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("unsupported engine: err = %v, want ErrUnsupported", err)
	}

	empty := newTestLocal("say", "")
	if _, err := empty.Prepare("hi", PrepareOptions{}); !errors.Is(err, ErrNoVoices) {
		t.Errorf("no voices: err = %v, want ErrNoVoices", err)
	}
}

func TestLocalSpeakCancellation(t *testing.T) {
	l := newTestLocal("say", sayVoiceList)
	started := make(chan struct{})
	l.runCommand = func(ctx context.Context, name string, args ...string) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}

	u, err := l.Prepare("hello", PrepareOptions{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- l.Speak(context.Background(), u) }()
	<-started
	l.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("cancelled Speak returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Speak did not return after Stop")
	}
}

func TestLocalSpeakUnwindKeepsSuccessorStoppable(t *testing.T) {
	l := newTestLocal("say", sayVoiceList)
	release := make(chan struct{})
	started := make(chan string, 2)
	l.runCommand = func(ctx context.Context, name string, args ...string) error {
		text := args[len(args)-1]
		started <- text
		if text == "one" {
			<-release
			return nil
		}
		<-ctx.Done()
		return ctx.Err()
	}

	u1, err := l.Prepare("one", PrepareOptions{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	u2, err := l.Prepare("two", PrepareOptions{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	done1 := make(chan error, 1)
	go func() { done1 <- l.Speak(context.Background(), u1) }()
	<-started

	done2 := make(chan error, 1)
	go func() { done2 <- l.Speak(context.Background(), u2) }()
	<-started

	// The first utterance finishes after the second has registered.
	close(release)
	if err := <-done1; err != nil {
		t.Fatalf("first Speak: %v", err)
	}

	// Stop must still reach the second utterance.
	l.Stop()
	select {
	case err := <-done2:
		if err != nil {
			t.Errorf("stopped Speak returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the active utterance")
	}
}

func TestLocalSpeakEngineFailure(t *testing.T) {
	l := newTestLocal("say", sayVoiceList)
	l.runCommand = func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1")
	}

	u, err := l.Prepare("hello", PrepareOptions{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := l.Speak(context.Background(), u); err == nil {
		t.Error("engine failure not reported")
	}
}

func TestNewLocalUnavailable(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	l := NewLocal()
	if l.Supported() {
		t.Error("Supported() = true with no engine on PATH")
	}
	if l.Name() != "local" {
		t.Errorf("Name() = %q, want %q", l.Name(), "local")
	}
}

func TestNewLocalPicksFirstEngine(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if name == "espeak-ng" || name == "espeak" {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	defer func() { lookPath = orig }()

	l := NewLocal()
	if !l.Supported() {
		t.Fatal("Supported() = false with espeak-ng on PATH")
	}
	if l.Name() != "espeak-ng" {
		t.Errorf("Name() = %q, want %q", l.Name(), "espeak-ng")
	}
}
