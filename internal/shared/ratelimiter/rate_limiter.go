package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter は固定ウィンドウで操作の回数を制限します。
// 複数の goroutine から同時に呼び出せます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しい RateLimiter を生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return newWithClock(limit, interval, time.Now)
}

func newWithClock(limit int, interval time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: now(),
		now:       now,
	}
}

// Allow reports whether one more operation fits in the current window.
// When it does not, it also returns the time left until the window resets.
func (rl *RateLimiter) Allow() (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	if rl.count >= rl.limit {
		return false, rl.interval - now.Sub(rl.lastReset)
	}
	rl.count++
	return true, 0
}
