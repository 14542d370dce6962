// Package journal records scene events as a JSONL stream. Every hover, select,
// drag commit, link attempt, CRUD result and failure raised by the galaxy is
// appended as one JSON object per line so a session can be audited or tailed
// live with `starfield events -f`.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// Emitter writes events to a JSONL file. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter creates an Emitter that appends to the file at path, creating it
// if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f)}, nil
}

// Emit writes a single event. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt galaxy.Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("journal: encode event: %w", err)
	}
	return nil
}

// EmitAll writes events in order and stops at the first error.
func (e *Emitter) EmitAll(events []galaxy.Event) error {
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}

// Decode parses one JSONL line.
func Decode(line string) (galaxy.Event, error) {
	var evt galaxy.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		return galaxy.Event{}, fmt.Errorf("journal: decode: %w", err)
	}
	return evt, nil
}

// ReadAll decodes every non-empty line from r. Malformed lines are skipped
// and counted.
func ReadAll(r io.Reader) ([]galaxy.Event, int, error) {
	var (
		events []galaxy.Event
		bad    int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		evt, err := Decode(line)
		if err != nil {
			bad++
			continue
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return events, bad, fmt.Errorf("journal: read: %w", err)
	}
	return events, bad, nil
}

// Format renders an event as a single human-readable line.
func Format(evt galaxy.Event) string {
	s := fmt.Sprintf("[%s] %s", evt.At.Format("15:04:05"), evt.Kind)
	if evt.IdeaID != "" {
		s += " idea=" + evt.IdeaID
	}
	if evt.LinkID != "" {
		s += " link=" + evt.LinkID
	}
	if evt.Level != galaxy.LevelNone {
		s += " level=" + string(evt.Level)
	}
	if evt.Text != "" {
		s += fmt.Sprintf(" %q", evt.Text)
	}
	return s
}
