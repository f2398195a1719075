package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestThrottle(t *testing.T) (*TokenThrottle, *time.Time) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	th := NewTokenThrottle(ThrottleConfig{MaxFailures: 3, Window: time.Minute, Lockout: 10 * time.Minute})
	th.now = func() time.Time { return clock }
	t.Cleanup(th.Stop)
	return th, &clock
}

func TestTokenThrottle_LocksAfterMaxFailures(t *testing.T) {
	th, clock := newTestThrottle(t)

	assert.False(t, th.Fail("1.2.3.4"))
	assert.False(t, th.Fail("1.2.3.4"))
	allowed, _ := th.Allow("1.2.3.4")
	assert.True(t, allowed)

	assert.True(t, th.Fail("1.2.3.4"))
	allowed, retry := th.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retry)

	other, _ := th.Allow("5.6.7.8")
	assert.True(t, other, "throttling is per IP")

	*clock = clock.Add(11 * time.Minute)
	allowed, _ = th.Allow("1.2.3.4")
	assert.True(t, allowed)
}

func TestTokenThrottle_WindowResets(t *testing.T) {
	th, clock := newTestThrottle(t)

	th.Fail("ip")
	th.Fail("ip")
	*clock = clock.Add(2 * time.Minute)
	assert.False(t, th.Fail("ip"), "failures outside the window start a new count")
}

func TestTokenThrottle_ResetAndCleanup(t *testing.T) {
	th, clock := newTestThrottle(t)

	th.Fail("a")
	th.Reset("a")
	assert.Empty(t, th.attempts)

	th.Fail("b")
	*clock = clock.Add(2 * time.Minute)
	th.cleanup()
	assert.Empty(t, th.attempts)
}
