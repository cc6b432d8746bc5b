// Package logstore holds the rolling in-memory buffer of frame analysis
// results shared between the surveillance loop and HTTP readers.
package logstore

import (
	"sync"

	"argus-monitor-go/internal/models"
)

// Store is a bounded FIFO of log entries. A single producer appends;
// any number of readers take snapshots concurrently. The buffer is
// purely in-memory and does not survive restarts.
type Store struct {
	mu       sync.RWMutex
	capacity int
	entries  []models.LogEntry
}

// New creates an empty store. Capacity values below 1 fall back to 1.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		entries:  make([]models.LogEntry, 0, capacity),
	}
}

// Append adds entry at the tail, evicting the oldest entry when the
// store is at capacity.
func (s *Store) Append(entry models.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		// Shift rather than reslice so evicted entries are not pinned
		// by the backing array.
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:s.capacity]
	}
}

// Snapshot returns an independent copy of the current entries,
// oldest-first. Safe to iterate while the producer keeps appending.
func (s *Store) Snapshot() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Capacity returns the configured maximum number of entries.
func (s *Store) Capacity() int {
	return s.capacity
}
