package submission

import (
	"encoding/json"
	"fmt"
)

// Log is the append-only, newest-first record of past submissions. All
// mutation goes through the controller on a single flight at a time, so
// Append and Clear never interleave.
type Log struct {
	store   LogStore
	entries []LogEntry
}

// NewLog creates a submission log backed by the given store.
func NewLog(store LogStore) *Log {
	return &Log{store: store, entries: []LogEntry{}}
}

// Load restores the persisted snapshot as the initial in-memory state.
// An absent snapshot starts the log empty. The snapshot is trusted and
// restored verbatim; no schema validation is performed.
func (l *Log) Load() error {
	snapshot, ok, err := l.store.Read()
	if err != nil {
		return fmt.Errorf("loading submission log: %w", err)
	}
	if !ok {
		l.entries = []LogEntry{}
		return nil
	}

	var entries []LogEntry
	if err := json.Unmarshal(snapshot, &entries); err != nil {
		return fmt.Errorf("decoding submission log snapshot: %w", err)
	}
	if entries == nil {
		entries = []LogEntry{}
	}
	l.entries = entries
	return nil
}

// Append prepends the entry (newest first) and persists the entire log
// as one snapshot. The full overwrite keeps the persisted form always
// consistent with what is displayed, at the cost of rewriting the whole
// log on every append.
func (l *Log) Append(entry LogEntry) error {
	l.entries = append([]LogEntry{entry}, l.entries...)

	snapshot, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("encoding submission log snapshot: %w", err)
	}
	if err := l.store.Write(snapshot); err != nil {
		return fmt.Errorf("persisting submission log: %w", err)
	}
	return nil
}

// Clear empties the log and removes the persisted snapshot. It is
// irreversible and idempotent.
func (l *Log) Clear() error {
	l.entries = []LogEntry{}
	if err := l.store.Delete(); err != nil {
		return fmt.Errorf("clearing submission log: %w", err)
	}
	return nil
}

// Entries returns the log newest first. The returned slice is a copy;
// entries themselves are never mutated.
func (l *Log) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	return len(l.entries)
}
