package core

// load_limiter.go bounds how many uploaded batches are parsed at once.
//
// Parsing holds the whole file and its decoded records in memory, so a burst
// of large uploads is queued on a semaphore instead of running in parallel.
// A load that cannot get a slot within the wait time fails with
// ErrTooManyLoads. WaitForDrain lets shutdown finish in-flight loads.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyLoads is returned when every parse slot stayed busy for the
// whole wait time. Clients should retry after a short delay.
var ErrTooManyLoads = errors.New("too many concurrent uploads")

// Defaults applied by NewLoadLimiter for non-positive arguments.
const (
	DefaultMaxConcurrentLoads = 4
	DefaultLoadWait           = 30 * time.Second
)

// LoadLimiter is a counting semaphore over batch parsing.
type LoadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

// NewLoadLimiter allows at most maxConcurrent parses at a time. Callers
// wait up to maxWait for a slot.
func NewLoadLimiter(maxConcurrent int, maxWait time.Duration) *LoadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentLoads
	}
	if maxWait <= 0 {
		maxWait = DefaultLoadWait
	}
	return &LoadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it exactly once.
// It returns ctx.Err() when ctx ends first and ErrTooManyLoads when the
// wait time runs out.
func (l *LoadLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyLoads
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *LoadLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *LoadLimiter) Release() {
	<-l.slots
}

// Active returns the number of parses in progress.
func (l *LoadLimiter) Active() int {
	return len(l.slots)
}

// WaitForDrain blocks until no parse is in progress or ctx ends.
func (l *LoadLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// LoadLimiterStatus is a snapshot of the limiter for the health endpoint.
type LoadLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"maxConcurrent"`
}

// Status reports current usage.
func (l *LoadLimiter) Status() LoadLimiterStatus {
	active := len(l.slots)
	return LoadLimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
	}
}
