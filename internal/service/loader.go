package service

import "sync"

// loader guards a controller's last successfully loaded payload. Each load
// takes a generation; only the newest generation may publish, so an older
// in-flight load that finishes late is discarded in favour of what the newer
// one published. A failed load never touches the snapshot; callers serve it
// as a stale fallback when a refresh fails.
type loader[T any] struct {
	mu     sync.Mutex
	gen    uint64
	value  T
	loaded bool
}

// begin registers a new load and returns its generation.
func (l *loader[T]) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// complete publishes the payload for the given generation. Stale generations
// are rejected; the caller should render from snapshot instead.
func (l *loader[T]) complete(gen uint64, value T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.value = value
	l.loaded = true
	return true
}

// snapshot returns the last published payload, if any. The value is shared;
// callers must treat it as read-only.
func (l *loader[T]) snapshot() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		var zero T
		return zero, false
	}
	return l.value, true
}
