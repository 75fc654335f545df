package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/doccontrol-backend/pkg/ctxutil"
)

const idleBucketTTL = 10 * time.Minute

// WriteLimiter applies a per-actor token bucket to mutating requests
// (anything other than GET, HEAD, OPTIONS). Anonymous callers are keyed by
// remote IP.
type WriteLimiter struct {
	perMinute int
	now       func() time.Time

	buckets sync.Map // string -> *bucket
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewWriteLimiter allows perMinute writes per actor, sweeping idle buckets
// every cleanupInterval until Stop.
func NewWriteLimiter(perMinute int, cleanupInterval time.Duration) *WriteLimiter {
	l := &WriteLimiter{perMinute: perMinute, now: time.Now, stop: make(chan struct{})}
	go l.sweep(cleanupInterval)
	return l
}

// Stop terminates the sweeper. It is safe to call more than once.
func (l *WriteLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Middleware returns the limiting middleware. It must run inside Auth.
func (l *WriteLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.perMinute <= 0 || isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if !l.allow(limitKey(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(60/l.perMinute+1))
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many write requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

func limitKey(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "actor:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (l *WriteLimiter) allow(key string) bool {
	now := l.now()
	capacity := float64(l.perMinute)
	v, _ := l.buckets.LoadOrStore(key, &bucket{tokens: capacity, last: now})
	b := v.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.last).Seconds() * capacity / 60
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *WriteLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			now := l.now()
			l.buckets.Range(func(k, v any) bool {
				b := v.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.last)
				b.mu.Unlock()
				if idle > idleBucketTTL {
					l.buckets.Delete(k)
				}
				return true
			})
		}
	}
}
