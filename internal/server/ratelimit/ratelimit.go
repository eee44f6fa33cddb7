// Package ratelimit gates audit requests per client identifier.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is the capability the audit endpoint consumes. Implementations must
// be safe for concurrent use. The in-memory implementation below is the
// default; a shared-store implementation can be injected for horizontal
// scaling without touching the endpoint.
type Limiter interface {
	Allow(id string, limit int, window time.Duration) bool
}

// window tracks one client's request count inside the current fixed window.
type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a process-local fixed-window limiter. A background
// goroutine evicts idle clients so the map cannot grow without bound.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryLimiter starts a limiter whose cleanup pass runs every
// cleanupInterval. Call Stop when shutting down.
func NewMemoryLimiter(cleanupInterval time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}

	if cleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(cleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup(cleanupInterval)
	}

	return l
}

// Allow reports whether the client identified by id may make another request
// under a limit of limit requests per window. The first request after a
// window expires opens a fresh one.
func (l *MemoryLimiter) Allow(id string, limit int, windowDur time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[id]
	if !ok || now.Sub(w.start) >= windowDur {
		l.windows[id] = &window{start: now, count: 1}
		return true
	}

	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

func (l *MemoryLimiter) cleanup(interval time.Duration) {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(interval)
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops windows that started more than an interval ago; any client
// still active will simply open a fresh window on its next request.
func (l *MemoryLimiter) evictIdle(interval time.Duration) {
	cutoff := l.now().Add(-interval)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, w := range l.windows {
		if w.start.Before(cutoff) {
			delete(l.windows, id)
		}
	}
}

// Stop halts the cleanup goroutine.
func (l *MemoryLimiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
