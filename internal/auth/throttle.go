package auth

import (
	"sync"
	"time"
)

// TokenThrottle locks out client IPs that keep presenting invalid bearer
// tokens. Failures are counted in a fixed window per IP.
type TokenThrottle struct {
	mu          sync.Mutex
	attempts    map[string]*attemptRecord
	maxFailures int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

type attemptRecord struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// ThrottleConfig configures a TokenThrottle.
type ThrottleConfig struct {
	MaxFailures     int           // failures tolerated per window (default 10)
	Window          time.Duration // default 15m
	Lockout         time.Duration // default 15m
	CleanupInterval time.Duration // default 5m
}

// NewTokenThrottle creates a throttle and starts its cleanup loop.
func NewTokenThrottle(cfg ThrottleConfig) *TokenThrottle {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = 15 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	t := &TokenThrottle{
		attempts:    make(map[string]*attemptRecord),
		maxFailures: cfg.MaxFailures,
		window:      cfg.Window,
		lockout:     cfg.Lockout,
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	go t.cleanupLoop(cfg.CleanupInterval)
	return t
}

// Stop ends the cleanup loop.
func (t *TokenThrottle) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Allow reports whether ip may attempt token authentication, and if not, how
// long until it may.
func (t *TokenThrottle) Allow(ip string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.attempts[ip]
	if !ok {
		return true, 0
	}
	now := t.now()
	if now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}
	return true, 0
}

// Fail records an invalid token from ip and reports whether ip is now locked.
func (t *TokenThrottle) Fail(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	record, ok := t.attempts[ip]
	if !ok || now.Sub(record.windowStart) > t.window {
		record = &attemptRecord{windowStart: now}
		t.attempts[ip] = record
	}

	record.count++
	if record.count >= t.maxFailures {
		record.lockedUntil = now.Add(t.lockout)
		return true
	}
	return false
}

// Reset forgets ip's failures after a successful authentication.
func (t *TokenThrottle) Reset(ip string) {
	t.mu.Lock()
	delete(t.attempts, ip)
	t.mu.Unlock()
}

func (t *TokenThrottle) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.cleanup()
		case <-t.stop:
			return
		}
	}
}

func (t *TokenThrottle) cleanup() {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for ip, record := range t.attempts {
		if now.Sub(record.windowStart) > t.window && !now.Before(record.lockedUntil) {
			delete(t.attempts, ip)
		}
	}
}
