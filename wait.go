package main

import (
	"context"
	"log/slog"
	"time"
)

// waitPolicy holds every fixed pause and bounded wait used during a run.
// The portal renders client side, so a few fixed pauses are still needed
// after navigation and clicks.
type waitPolicy struct {
	AfterLoad     time.Duration // after opening the login page
	AfterLogin    time.Duration // after submitting the login form
	AfterNavigate time.Duration // after opening the attendance page
	AfterCheckIn  time.Duration // after clicking check-in
	BeforeClose   time.Duration // visible mode only, lets a human look at the page

	NavigateTimeout  time.Duration // page loads and one-shot page reads
	ElementTimeout   time.Duration
	DashboardTimeout time.Duration
	CheckInTimeout   time.Duration
	PollInterval     time.Duration
}

func defaultWaitPolicy() waitPolicy {
	return waitPolicy{
		AfterLoad:     2 * time.Second,
		AfterLogin:    5 * time.Second,
		AfterNavigate: 3 * time.Second,
		AfterCheckIn:  3 * time.Second,
		BeforeClose:   5 * time.Second,

		NavigateTimeout:  25 * time.Second,
		ElementTimeout:   10 * time.Second,
		DashboardTimeout: 15 * time.Second,
		CheckInTimeout:   10 * time.Second,
		PollInterval:     500 * time.Millisecond,
	}
}

// pause sleeps for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withTimeout runs fn with a context bounded by d.
func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}

// pollUntil calls check until it reports true or timeout elapses. The check
// always runs at least once. Reaching the timeout is not an error: it
// returns false, nil. Only cancellation of the parent ctx is returned.
func pollUntil(ctx context.Context, timeout, interval time.Duration, check func(context.Context) (bool, error)) (bool, error) {
	bounded, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	for {
		ok, err := check(bounded)
		if err == nil && ok {
			return true, nil
		}
		if err != nil {
			lastErr = err
		}

		if interval <= 0 {
			interval = time.Millisecond
		}
		t := time.NewTimer(interval)
		select {
		case <-bounded.Done():
			t.Stop()
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if lastErr != nil {
				slog.Debug("Bounded wait expired", "timeout", timeout, "last_error", lastErr)
			}
			return false, nil
		case <-t.C:
		}
	}
}
