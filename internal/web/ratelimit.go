package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	mw "github.com/JonMunkholm/MedQA/internal/web/middleware"
)

// rateLimiter is a fixed-window request budget per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // window length
	now      func() time.Time

	done chan struct{}
	once sync.Once
}

type visitor struct {
	used  int
	start time.Time
}

// newRateLimiter allows rate requests per window for each IP and starts
// the sweeper that forgets idle visitors.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// sweep drops visitors whose window ended long ago, until stop is called.
func (rl *rateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-2 * rl.window)
			for ip, v := range rl.visitors {
				if v.start.Before(cutoff) {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.once.Do(func() { close(rl.done) })
}

// allow spends one request of ip's budget. It returns false once the
// budget of the current window is used up, along with the budget left and
// when the window resets.
func (rl *rateLimiter) allow(ip string) (ok bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.start) >= rl.window {
		v = &visitor{start: now}
		rl.visitors[ip] = v
	}
	reset = v.start.Add(rl.window)

	if v.used >= rl.rate {
		return false, 0, reset
	}
	v.used++
	return true, rl.rate - v.used, reset
}

// middleware rejects requests over budget with 429 and RATE001.
// RemoteAddr has already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, remaining, reset := rl.allow(mw.ClientIP(r))

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			wait := int(time.Until(reset).Seconds()) + 1
			h.Set("Retry-After", strconv.Itoa(wait))
			respondError(w, r, errRateLimited, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
