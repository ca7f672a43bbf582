package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/impactgrid/impactgrid/internal/world"
)

// Entry is a single narration line in the impact log. Entries are immutable.
type Entry struct {
	ID       string         `json:"id"`
	Time     time.Time      `json:"time"`
	Category world.Category `json:"category"`
	Text     string         `json:"text"`
}

// String formats the entry the way the log panel shows it.
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format("15:04:05"), e.Text)
}

// EventLog is an append-only narration feed. It is unbounded for the
// lifetime of a session and only shrinks on Clear.
type EventLog struct {
	entries []Entry
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add appends a message and returns the stored entry.
func (l *EventLog) Add(now time.Time, cat world.Category, text string) Entry {
	e := Entry{
		ID:       uuid.NewString(),
		Time:     now,
		Category: cat,
		Text:     text,
	}
	l.entries = append(l.entries, e)
	return e
}

// Len returns the number of entries.
func (l *EventLog) Len() int { return len(l.entries) }

// Recent returns up to n entries, newest first.
func (l *EventLog) Recent(n int) []Entry {
	if n > len(l.entries) || n < 0 {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// All returns every entry, newest first.
func (l *EventLog) All() []Entry { return l.Recent(-1) }

// Clear drops every entry.
func (l *EventLog) Clear() { l.entries = nil }

// WrapText splits text into lines no longer than maxWidth, breaking on spaces.
func WrapText(s string, maxWidth int) []string {
	if len(s) <= maxWidth {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var result []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxWidth {
			result = append(result, line)
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}
