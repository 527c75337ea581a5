package http

import (
	"sync"
	"time"
)

const (
	staleBucketThreshold = 1 * time.Hour
	cleanupInterval      = 30 * time.Minute
)

type visitorBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter es un token bucket por IP con recarga proporcional al tiempo
// transcurrido. Las simulaciones son costosas, así que el cupo por defecto
// es bajo.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	// tokens por segundo: capacity repartido sobre la ventana.
	refillRate  float64
	visitors    map[string]*visitorBucket
	stopCleanup chan struct{}
}

// NewRateLimiter permite capacity peticiones por window, por IP.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:    float64(capacity),
		refillRate:  float64(capacity) / window.Seconds(),
		visitors:    make(map[string]*visitorBucket),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow consume un token de la IP si hay disponible. Los tokens se reponen
// de forma continua, no por ventanas discretas, así una ráfaga que agota el
// cupo no bloquea la IP una ventana completa.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	bucket, exists := r.visitors[ip]
	if !exists {
		bucket = &visitorBucket{tokens: r.capacity, lastSeen: now}
		r.visitors[ip] = bucket
	} else {
		elapsed := now.Sub(bucket.lastSeen).Seconds()
		bucket.tokens = min(r.capacity, bucket.tokens+elapsed*r.refillRate)
		bucket.lastSeen = now
	}

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

func (r *RateLimiter) Stop() {
	close(r.stopCleanup)
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup descarta los buckets de visitantes inactivos.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for ip, bucket := range r.visitors {
		if now.Sub(bucket.lastSeen) > staleBucketThreshold {
			delete(r.visitors, ip)
		}
	}
}
