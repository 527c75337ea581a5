package http

import (
	"testing"
	"time"
)

func TestRateLimiter_BurstThenBlocked(t *testing.T) {
	limiter := NewRateLimiter(3, time.Hour)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("request beyond capacity should be blocked")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("first IP should be allowed")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("a different IP has its own bucket")
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("first IP exhausted its bucket")
	}
}

func TestRateLimiter_ContinuousRefill(t *testing.T) {
	// 100 tokens por segundo: tras agotar el cupo, en ~20ms ya hay un token.
	limiter := NewRateLimiter(100, time.Second)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		limiter.Allow("10.0.0.1")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatalf("bucket should be empty right after the burst")
	}

	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("10.0.0.1") {
		t.Errorf("tokens refill continuously, not per window")
	}
}
