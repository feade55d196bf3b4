package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type credentials struct {
	Email    string
	Password string
}

var errLoginTimeout = errors.New("login did not reach the dashboard in time")

// checkInRunner drives one check-in attempt against the payroll portal.
type checkInRunner struct {
	site  siteProfile
	wait  waitPolicy
	open  opener
	shots artifacts
	out   reporter
	now   func() time.Time
}

func newCheckInRunner(open opener, out reporter, artifactsDir string) *checkInRunner {
	return &checkInRunner{
		site:  razorpayPayroll(),
		wait:  defaultWaitPolicy(),
		open:  open,
		shots: artifacts{dir: artifactsDir},
		out:   out,
		now:   time.Now,
	}
}

// CheckIn reports whether attendance is marked for today once the run is
// over, either by this run or earlier. The browser it opens is always closed
// before it returns.
func (r *checkInRunner) CheckIn(ctx context.Context, creds credentials, opts browserOptions) bool {
	r.out.Report(eventStep, "Starting check-in automation...")
	slog.Info("Starting check-in", "headless", opts.Headless)

	drv, err := r.open(ctx, opts)
	if err != nil {
		slog.Error("Failed to open browser", "error", err)
		r.out.Report(eventFail, fmt.Sprintf("Error occurred: %v", err))
		return false
	}
	defer r.closeBrowser(ctx, drv, opts.Headless)

	ok, err := r.run(ctx, drv, creds)
	if err != nil {
		return r.fail(ctx, drv, err)
	}
	return ok
}

func (r *checkInRunner) run(ctx context.Context, drv driver, creds credentials) (bool, error) {
	r.out.Report(eventStep, "Navigating to login page...")
	err := withTimeout(ctx, r.wait.NavigateTimeout, func(ctx context.Context) error {
		return drv.Navigate(ctx, r.site.LoginURL)
	})
	if err != nil {
		return false, fmt.Errorf("open login page: %w", err)
	}
	if err := pause(ctx, r.wait.AfterLoad); err != nil {
		return false, err
	}

	if err := r.login(ctx, drv, creds); err != nil {
		return false, err
	}
	r.out.Report(eventDone, "Login successful!")

	if err := r.openAttendance(ctx, drv); err != nil {
		return false, err
	}
	return r.markAttendance(ctx, drv)
}

func (r *checkInRunner) login(ctx context.Context, drv driver, creds credentials) error {
	r.out.Report(eventStep, "Logging in...")

	err := withTimeout(ctx, r.wait.ElementTimeout, func(ctx context.Context) error {
		if err := drv.Fill(ctx, r.site.EmailField, creds.Email); err != nil {
			return err
		}
		if err := drv.Fill(ctx, r.site.PasswordField, creds.Password); err != nil {
			return err
		}
		return drv.Click(ctx, r.site.LoginButton)
	})
	if err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}
	if err := pause(ctx, r.wait.AfterLogin); err != nil {
		return err
	}

	reached, err := pollUntil(ctx, r.wait.DashboardTimeout, r.wait.PollInterval, func(ctx context.Context) (bool, error) {
		loc, err := drv.Location(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(loc, r.site.DashboardPath), nil
	})
	if err != nil {
		return err
	}
	if !reached {
		return fmt.Errorf("%w (%s)", errLoginTimeout, r.wait.DashboardTimeout)
	}
	return nil
}

func (r *checkInRunner) openAttendance(ctx context.Context, drv driver) error {
	r.out.Report(eventStep, "Navigating to Attendance page...")
	err := withTimeout(ctx, r.wait.ElementTimeout, func(ctx context.Context) error {
		return drv.Click(ctx, r.site.AttendanceLink)
	})
	if err != nil {
		return fmt.Errorf("open attendance page: %w", err)
	}
	if err := pause(ctx, r.wait.AfterNavigate); err != nil {
		return err
	}

	_ = withTimeout(ctx, r.wait.NavigateTimeout, func(ctx context.Context) error {
		loc, err := drv.Location(ctx)
		if err == nil {
			r.out.Report(eventInfo, "Current URL: "+loc)
			slog.Info("Attendance page opened", "url", loc)
		}
		return err
	})
	return ctx.Err()
}

// markAttendance runs the detection sequence: check-out button, then
// check-in button, then the "marked" banner. Errors returned from here are
// only those that end the whole run.
func (r *checkInRunner) markAttendance(ctx context.Context, drv driver) (bool, error) {
	r.out.Report(eventStep, "Checking attendance status...")

	if r.readState(ctx, drv).CheckOut {
		r.out.Report(eventDone, "Already checked in for today!")
		r.out.Report(eventInfo, "Check-in completed at "+r.now().Format("15:04:05"))
		r.shots.screenshot(ctx, drv, shotAlreadyCheckedIn)
		return true, nil
	}
	r.out.Report(eventInfo, "Not checked in yet, proceeding with check-in...")

	found, err := r.waitForCheckIn(ctx, drv)
	if err != nil {
		return false, err
	}
	if found {
		if r.clickCheckIn(ctx, drv) {
			return true, nil
		}
	}

	r.out.Report(eventWarn, "No check-in button found. Checking status...")
	r.shots.screenshot(ctx, drv, shotNoButton)

	if r.readState(ctx, drv).Marked {
		r.out.Report(eventDone, "Attendance already marked for today!")
		return true, nil
	}
	r.out.Report(eventFail, "Could not determine check-in status")
	return false, nil
}

// readState takes one bounded snapshot of the page. A failed read counts as
// nothing found.
func (r *checkInRunner) readState(ctx context.Context, drv driver) pageState {
	var snapshot string
	err := withTimeout(ctx, r.wait.NavigateTimeout, func(ctx context.Context) error {
		var err error
		snapshot, err = drv.HTML(ctx)
		return err
	})
	if err != nil {
		slog.Warn("Failed to read attendance page", "error", err)
		return pageState{}
	}
	return readPageState(snapshot, r.site)
}

func (r *checkInRunner) waitForCheckIn(ctx context.Context, drv driver) (bool, error) {
	return pollUntil(ctx, r.wait.CheckInTimeout, r.wait.PollInterval, func(ctx context.Context) (bool, error) {
		snapshot, err := drv.HTML(ctx)
		if err != nil {
			return false, err
		}
		return readPageState(snapshot, r.site).CheckIn, nil
	})
}

// clickCheckIn presses the check-in button. A failed click is not fatal:
// the caller falls back to looking for the banner.
func (r *checkInRunner) clickCheckIn(ctx context.Context, drv driver) bool {
	r.shots.screenshot(ctx, drv, shotBeforeCheckIn)
	r.out.Report(eventStep, "Found check-in button, clicking...")

	err := withTimeout(ctx, r.wait.ElementTimeout, func(ctx context.Context) error {
		return drv.Click(ctx, r.site.CheckInButton)
	})
	if err != nil {
		slog.Warn("Failed to click check-in button", "error", err)
		return false
	}
	if err := pause(ctx, r.wait.AfterCheckIn); err != nil {
		slog.Warn("Interrupted after check-in click", "error", err)
	}

	r.shots.screenshot(ctx, drv, shotAfterCheckIn)
	r.out.Report(eventDone, "Successfully checked in at "+r.now().Format("15:04:05"))
	return true
}

func (r *checkInRunner) fail(ctx context.Context, drv driver, err error) bool {
	slog.Error("Check-in run failed", "error", err)
	r.out.Report(eventFail, fmt.Sprintf("Error occurred: %v", err))

	// the run ctx may be the reason for the failure
	diagCtx := context.WithoutCancel(ctx)
	if p := r.shots.screenshot(diagCtx, drv, shotError); p != "" {
		r.out.Report(eventInfo, "Error screenshot saved")
	}
	r.shots.pageDump(diagCtx, drv, dumpError)
	_ = withTimeout(diagCtx, artifactTimeout, func(ctx context.Context) error {
		loc, err := drv.Location(ctx)
		if err == nil {
			r.out.Report(eventInfo, "Current URL: "+loc)
		}
		return err
	})
	return false
}

func (r *checkInRunner) closeBrowser(ctx context.Context, drv driver, headless bool) {
	if !headless {
		r.out.Report(eventStep, fmt.Sprintf("Waiting %s before closing...", r.wait.BeforeClose))
		_ = pause(ctx, r.wait.BeforeClose)
	}
	if err := drv.Close(); err != nil {
		slog.Warn("Browser did not close cleanly", "error", err)
	}
	r.out.Report(eventDone, "Browser closed")
}
