// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package voice

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// defaultRate is the speaking rate in words per minute when options leave
// it unset. Slightly below typical engine defaults for clarity.
const defaultRate = 175

// lookPath resolves engine binaries. Package-level var for test substitution.
var lookPath = exec.LookPath

// localEngine describes one supported speech engine binary.
type localEngine struct {
	binary     string
	darwinOnly bool
}

// localEngines are tried in order; the first resolvable binary wins.
var localEngines = []localEngine{
	{binary: "say", darwinOnly: true},
	{binary: "espeak-ng"},
	{binary: "espeak"},
}

// Local is the Backend that drives a local speech engine binary (macOS
// `say`, or espeak on other platforms). Preparation is synchronous and
// cheap: it selects a voice and builds the engine invocation; the command
// only runs when the Controller speaks the utterance.
type Local struct {
	engine string // resolved binary, empty when unsupported

	// runCommand executes the engine. Tests substitute it.
	runCommand func(ctx context.Context, name string, args ...string) error

	// voicesOutput captures `say -v ?` / `espeak --voices` output.
	// Tests substitute it.
	voicesOutput func(name string, args ...string) (string, error)

	mu      sync.Mutex
	current context.CancelFunc
	gen     uint64
}

// NewLocal resolves the first available speech engine. The returned
// backend reports Supported() == false when none is installed.
func NewLocal() *Local {
	l := &Local{
		runCommand: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		voicesOutput: func(name string, args ...string) (string, error) {
			out, err := exec.Command(name, args...).Output()
			return string(out), err
		},
	}
	for _, e := range localEngines {
		if e.darwinOnly && runtime.GOOS != "darwin" {
			continue
		}
		if _, err := lookPath(e.binary); err == nil {
			l.engine = e.binary
			break
		}
	}
	return l
}

// Name implements Backend.
func (l *Local) Name() string {
	if l.engine == "" {
		return "local"
	}
	return l.engine
}

// Supported implements Backend.
func (l *Local) Supported() bool {
	return l.engine != ""
}

// Voices implements Backend.
func (l *Local) Voices() ([]Voice, error) {
	switch l.engine {
	case "say":
		out, err := l.voicesOutput("say", "-v", "?")
		if err != nil {
			return nil, fmt.Errorf("listing voices: %w", err)
		}
		return parseSayVoices(out), nil
	case "espeak", "espeak-ng":
		out, err := l.voicesOutput(l.engine, "--voices")
		if err != nil {
			return nil, fmt.Errorf("listing voices: %w", err)
		}
		return parseEspeakVoices(out), nil
	default:
		return nil, ErrUnsupported
	}
}

// Prepare implements Backend. It selects the best matching voice and
// builds the engine invocation without speaking.
func (l *Local) Prepare(text string, opts PrepareOptions) (*Utterance, error) {
	if !l.Supported() {
		return nil, ErrUnsupported
	}

	voices, err := l.Voices()
	if err != nil {
		return nil, err
	}
	if len(voices) == 0 {
		return nil, ErrNoVoices
	}

	selected := selectVoice(voices, opts)

	rate := opts.Rate
	if rate <= 0 {
		rate = defaultRate
	}

	var args []string
	switch l.engine {
	case "say":
		args = []string{"-v", selected.Name, "-r", strconv.Itoa(rate), text}
	default: // espeak, espeak-ng
		args = []string{"-v", selected.Name, "-s", strconv.Itoa(rate), text}
	}

	return &Utterance{
		ID:    uuid.NewString(),
		Text:  text,
		Voice: selected,
		args:  args,
	}, nil
}

// Speak implements Backend. It blocks until the engine finishes, errors,
// or ctx is cancelled.
func (l *Local) Speak(ctx context.Context, u *Utterance) error {
	if !l.Supported() {
		return ErrUnsupported
	}

	speakCtx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.current = cancel
	l.mu.Unlock()

	err := l.runCommand(speakCtx, l.engine, u.args...)

	l.mu.Lock()
	// Only clear if no later Speak has registered its own cancel.
	if l.gen == gen {
		l.current = nil
	}
	l.mu.Unlock()
	cancel()

	if speakCtx.Err() != nil {
		// Cancelled speech is not an engine failure.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", l.engine, err)
	}
	return nil
}

// Stop implements Backend. Idempotent.
func (l *Local) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		l.current()
		l.current = nil
	}
}

// selectVoice picks the requested voice when present, otherwise the best
// ranked one.
func selectVoice(voices []Voice, opts PrepareOptions) Voice {
	ranked := BestVoices(voices, opts.Language)
	if opts.Voice != "" {
		for _, v := range ranked {
			if strings.Contains(v.Name, opts.Voice) {
				return v
			}
		}
	}
	return ranked[0]
}

// parseSayVoices parses `say -v ?` output. Each line looks like:
//
//	Samantha            en_US    # Hello! My name is Samantha.
func parseSayVoices(out string) []Voice {
	var voices []Voice
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest, ok := splitVoiceLine(line)
		if !ok {
			continue
		}
		lang := strings.ReplaceAll(rest, "_", "-")
		voices = append(voices, Voice{Name: name, Language: lang, Local: true})
	}
	return voices
}

// splitVoiceLine splits a say voice line into the (possibly multi-word)
// voice name and the language tag before the # comment.
func splitVoiceLine(line string) (name, lang string, ok bool) {
	if i := strings.Index(line, "#"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	lang = fields[len(fields)-1]
	name = strings.Join(fields[:len(fields)-1], " ")
	return name, lang, true
}

// parseEspeakVoices parses `espeak --voices` output. The table starts with
// a header row:
//
//	Pty Language Age/Gender VoiceName          File          Other Languages
//	 5  en-gb          M  english             en            (en 2)
func parseEspeakVoices(out string) []Voice {
	var voices []Voice
	for i, line := range strings.Split(out, "\n") {
		if i == 0 { // header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Language: fields[1], Local: true})
	}
	return voices
}
