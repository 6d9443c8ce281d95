package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLogCapacity is the number of entries kept by NewLogBuffer(0).
const DefaultLogCapacity = 5

// Priority ranks log entries for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// LogEntry is one line of the ephemeral status feed.
type LogEntry struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
	Priority  Priority `json:"priority"`
}

// NewLogEntry stamps message with a fresh ID and the HH:MM:SS of at.
func NewLogEntry(at time.Time, message string, priority Priority) LogEntry {
	return LogEntry{
		ID:        uuid.NewString(),
		Timestamp: at.Format("15:04:05"),
		Message:   message,
		Priority:  priority,
	}
}

// LogBuffer holds the newest entries first, truncated to a fixed capacity.
// Append and Entries are safe for concurrent use.
type LogBuffer struct {
	mu       sync.Mutex
	capacity int
	entries  []LogEntry
}

// NewLogBuffer creates a buffer; capacity <= 0 selects DefaultLogCapacity.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogBuffer{capacity: capacity, entries: make([]LogEntry, 0, capacity)}
}

// Append puts e at the front and drops the oldest entries past capacity.
func (b *LogBuffer) Append(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]LogEntry, 0, b.capacity)
	next = append(next, e)
	next = append(next, b.entries...)
	if len(next) > b.capacity {
		next = next[:b.capacity]
	}
	b.entries = next
}

// Entries returns a snapshot, newest first.
func (b *LogBuffer) Entries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len reports the number of buffered entries.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
