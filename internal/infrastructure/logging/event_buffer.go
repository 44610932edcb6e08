package logging

import (
	"context"
	"sync"

	"github.com/unveels/tryon/internal/ports"
)

const defaultBufferLimit = 1000

// Level orders buffered entries by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Entry is one buffered log call.
type Entry struct {
	ctx    context.Context
	Level  Level
	Msg    string
	Fields []interface{}
}

// EventBuffer stores log entries until a delegate logger can take them. When
// full, the oldest entry is dropped.
type EventBuffer struct {
	mu     sync.Mutex
	limit  int
	events []Entry
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]Entry, 0, limit),
	}
}

func (b *EventBuffer) add(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		return
	}
	b.events = append(b.events, entry)
}

// Len reports how many entries are currently buffered.
func (b *EventBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Latest returns the most recent entry at or above min.
func (b *EventBuffer) Latest(min Level) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].Level >= min {
			return b.events[i], true
		}
	}
	return Entry{}, false
}

// Flush replays buffered events using the provided logger, preserving ordering.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]Entry, len(b.events))
	copy(events, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	for _, entry := range events {
		switch entry.Level {
		case LevelDebug:
			delegate.Debug(entry.ctx, entry.Msg, entry.Fields...)
		case LevelWarn:
			delegate.Warn(entry.ctx, entry.Msg, entry.Fields...)
		case LevelError:
			delegate.Error(entry.ctx, entry.Msg, entry.Fields...)
		default:
			delegate.Info(entry.ctx, entry.Msg, entry.Fields...)
		}
	}
}
