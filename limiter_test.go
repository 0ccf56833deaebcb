package ivsite

import (
	"testing"
	"time"
)

func fail(l *LoginLimiter, ip string) bool {
	if !l.Check(ip) {
		return false
	}
	l.Record(ip)
	return true
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(2, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !fail(limiter, ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !fail(limiter, ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if limiter.Check(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)
	defer limiter.Stop()
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ip := "203.0.113.20"

	if !fail(limiter, ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if limiter.Check(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	now = now.Add(2 * time.Minute)
	if !limiter.Check(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)
	defer limiter.Stop()

	if !fail(limiter, "203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !fail(limiter, "203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Check("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestLoginLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
