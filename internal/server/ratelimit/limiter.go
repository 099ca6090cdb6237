// Package ratelimit provides per-user request rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config sets the per-user request rate and burst.
type Config struct {
	RPS             float64       // sustained requests per second per user
	Burst           int           // bucket size
	CleanupInterval time.Duration // how often idle limiters are dropped
}

type entry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// RateLimiter keeps one token bucket per user id.
type RateLimiter struct {
	limiters map[string]*entry
	mu       sync.Mutex
	config   Config
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRateLimiter creates a limiter and starts its cleanup goroutine when
// config.CleanupInterval is positive. Call Stop on shutdown.
func NewRateLimiter(config Config) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*entry),
		config:   config,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		rl.wg.Add(1)
		go rl.cleanupLoop()
	}

	return rl
}

// Allow reports whether userID may make a request now.
func (rl *RateLimiter) Allow(userID string) bool {
	return rl.limiter(userID).Allow()
}

func (rl *RateLimiter) limiter(userID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[userID]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)}
		rl.limiters[userID] = e
	}
	e.lastUsed = rl.now()
	return e.limiter
}

// Cleanup drops limiters idle for longer than the cleanup interval.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.config.CleanupInterval)
	for userID, e := range rl.limiters {
		if e.lastUsed.Before(cutoff) {
			delete(rl.limiters, userID)
		}
	}
}

// Len returns the number of tracked users.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) cleanupLoop() {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// Stop ends the cleanup goroutine and waits for it. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
	rl.wg.Wait()
}
