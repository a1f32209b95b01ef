package mem

import (
	"sync"
	"time"
)

// UsageCounter tracks how many times a key was used inside a rolling window.
type UsageCounter interface {
	// Count returns the current usage of key, 0 when missing or expired.
	Count(key string) int

	// Increment adds one use to key and returns the new count. The window
	// starts at the first use and is not extended by later ones.
	Increment(key string, window time.Duration) int

	// IncrementIfBelow adds one use only while the count is under limit.
	// It returns the count after the call and whether a use was added.
	IncrementIfBelow(key string, limit int, window time.Duration) (int, bool)

	// Decrement gives back one use. It never goes below zero.
	Decrement(key string)

	Reset(key string)
}

type entry struct {
	count     int
	expiresAt time.Time
}

type UsageCounters struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewUsageCounters() *UsageCounters {
	return &UsageCounters{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *UsageCounters) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return 0
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, key)
		return 0
	}
	return e.count
}

func (s *UsageCounters) Increment(key string, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok || now.After(e.expiresAt) {
		e = entry{expiresAt: now.Add(window)}
	}
	e.count++
	s.data[key] = e

	s.sweep(now)
	return e.count
}

func (s *UsageCounters) IncrementIfBelow(key string, limit int, window time.Duration) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok || now.After(e.expiresAt) {
		e = entry{expiresAt: now.Add(window)}
	}
	if e.count >= limit {
		return e.count, false
	}
	e.count++
	s.data[key] = e

	s.sweep(now)
	return e.count, true
}

func (s *UsageCounters) Decrement(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.data, key)
		return
	}
	if e.count <= 1 {
		delete(s.data, key)
		return
	}
	e.count--
	s.data[key] = e
}

func (s *UsageCounters) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// sweep drops expired entries once the map grows; caller holds the lock.
func (s *UsageCounters) sweep(now time.Time) {
	if len(s.data) < 1024 {
		return
	}
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
