package services

import (
	"time"

	"github.com/google/uuid"

	"quill/internal/config"
	mem "quill/pkg/memcache"
	"quill/pkg/utils"
)

// Caller identifies who asked for a generation. UserID is nil for guests,
// who are tracked by GuestKey instead.
type Caller struct {
	UserID   *uuid.UUID
	GuestKey string
}

func (c Caller) Authenticated() bool {
	return c.UserID != nil
}

// GuestLimiter caps unauthenticated generations per guest key.
type GuestLimiter struct {
	counter mem.UsageCounter
	enabled bool
	limit   int
	window  time.Duration
}

func NewGuestLimiter(counter mem.UsageCounter, cfg config.GuestConfig) *GuestLimiter {
	return &GuestLimiter{
		counter: counter,
		enabled: cfg.Enabled,
		limit:   cfg.Limit,
		window:  cfg.Window,
	}
}

// Reserve takes one generation from key's quota up front, failing with
// ErrGuestLimitReached when none is left. The returned reservation must be
// committed on success or released on failure. It is nil when the limit is
// off.
func (g *GuestLimiter) Reserve(key string) (*GuestReservation, error) {
	if !g.enabled {
		return nil, nil
	}
	used, ok := g.counter.IncrementIfBelow(guestCounterKey(key), g.limit, g.window)
	if !ok {
		return nil, utils.ErrGuestLimitReached
	}
	remaining := g.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &GuestReservation{counter: g.counter, key: guestCounterKey(key), remaining: remaining}, nil
}

// GuestReservation is one held guest generation. A nil reservation is a
// no-op.
type GuestReservation struct {
	counter   mem.UsageCounter
	key       string
	remaining int
	done      bool
}

// Commit keeps the use and returns the generations left.
func (r *GuestReservation) Commit() *int {
	if r == nil {
		return nil
	}
	r.done = true
	remaining := r.remaining
	return &remaining
}

// Release gives the use back unless it was committed.
func (r *GuestReservation) Release() {
	if r == nil || r.done {
		return
	}
	r.done = true
	r.counter.Decrement(r.key)
}

func guestCounterKey(key string) string {
	return "guest:" + key
}
