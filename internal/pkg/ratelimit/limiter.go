package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// LoginLimiter throttles credential guessing per normalized identity. It is
// a best-effort brake, not a security boundary: the in-memory backing resets
// on restart and is not shared across instances. The interface exists so a
// shared cache can back it instead.
type LoginLimiter interface {
	// Allow reports whether another attempt for key may proceed.
	Allow(key string) bool

	// Fail records a failed attempt for key.
	Fail(key string)

	// Reset clears the counter after a successful login.
	Reset(key string)
}

// NormalizeKey canonicalizes a credential identity for counting.
func NormalizeKey(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

type attemptEntry struct {
	count      int
	windowAt   time.Time
	blockUntil time.Time
}

// MemoryLimiter counts failures in a sliding window and blocks the key once
// the threshold is crossed.
type MemoryLimiter struct {
	mu       sync.Mutex
	entries  map[string]*attemptEntry
	max      int
	window   time.Duration
	blockFor time.Duration
}

func NewMemoryLimiter(maxAttempts int, window, blockFor time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries:  make(map[string]*attemptEntry),
		max:      maxAttempts,
		window:   window,
		blockFor: blockFor,
	}
}

func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return true
	}
	now := time.Now()
	if !e.blockUntil.IsZero() && now.Before(e.blockUntil) {
		return false
	}
	if now.After(e.windowAt) {
		delete(l.entries, key)
		return true
	}
	return e.count < l.max
}

func (l *MemoryLimiter) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.windowAt) {
		l.entries[key] = &attemptEntry{count: 1, windowAt: now.Add(l.window)}
		return
	}
	e.count++
	if e.count >= l.max {
		e.blockUntil = now.Add(l.blockFor)
	}
}

func (l *MemoryLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Cleanup removes expired entries.
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, e := range l.entries {
		if now.After(e.windowAt) && now.After(e.blockUntil) {
			delete(l.entries, key)
		}
	}
}
