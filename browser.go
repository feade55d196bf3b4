// browser.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/chromedp"
)

type locatorKind int

const (
	byCSS locatorKind = iota
	byXPath
)

// locator addresses one element on a page, either by CSS selector or XPath.
type locator struct {
	Expr string
	Kind locatorKind
}

func css(expr string) locator   { return locator{Expr: expr, Kind: byCSS} }
func xpath(expr string) locator { return locator{Expr: expr, Kind: byXPath} }

func (l locator) String() string { return l.Expr }

func (l locator) queryOption() chromedp.QueryOption {
	if l.Kind == byXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// driver is the small slice of browser control the check-in run needs.
// Element actions wait for their target until ctx expires.
type driver interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, loc locator, value string) error
	Click(ctx context.Context, loc locator) error
	Location(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// opener starts a new browser session.
type opener func(ctx context.Context, opts browserOptions) (driver, error)

type browserOptions struct {
	Headless bool
	ExecPath string
}

var errBrowserClosed = errors.New("browser session already closed")

// browserFlags are the fixed command line switches the session starts with.
func browserFlags(opts browserOptions) map[string]any {
	return map[string]any{
		"headless":              opts.Headless,
		"no-sandbox":            true,
		"disable-dev-shm-usage": true,
		"start-maximized":       true,
	}
}

func allocatorOptions(opts browserOptions) []chromedp.ExecAllocatorOption {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range browserFlags(opts) {
		allocOpts = append(allocOpts, chromedp.Flag(name, value))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	return allocOpts
}

// chromeDriver drives a Chrome/Chromium tab through chromedp.
type chromeDriver struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// openChrome launches the browser and its first tab.
func openChrome(ctx context.Context, opts browserOptions) (driver, error) {
	slog.Info("Using Chrome/Chromium executable:", "path", opts.ExecPath, "headless", opts.Headless)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocatorOptions(opts)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	// an empty Run starts the browser
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return &chromeDriver{ctx: tabCtx, cancel: cancel}, nil
}

// run executes actions on the tab, bounded by the deadline and
// cancellation of the caller's ctx.
func (d *chromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return errBrowserClosed
	}

	runCtx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (d *chromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

func (d *chromeDriver) Fill(ctx context.Context, loc locator, value string) error {
	by := loc.queryOption()
	err := d.run(ctx,
		chromedp.WaitReady(loc.Expr, by),
		chromedp.Clear(loc.Expr, by),
		chromedp.SendKeys(loc.Expr, value, by),
	)
	if err != nil {
		return fmt.Errorf("fill %s: %w", loc, err)
	}
	return nil
}

func (d *chromeDriver) Click(ctx context.Context, loc locator) error {
	by := loc.queryOption()
	err := d.run(ctx,
		chromedp.WaitVisible(loc.Expr, by),
		chromedp.WaitEnabled(loc.Expr, by),
		chromedp.Click(loc.Expr, by),
	)
	if err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

func (d *chromeDriver) Location(ctx context.Context) (string, error) {
	var url string
	if err := d.run(ctx, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// HTML returns the current DOM serialized as markup.
func (d *chromeDriver) HTML(ctx context.Context) (string, error) {
	var html string
	if err := d.run(ctx, chromedp.OuterHTML(`html`, &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Screenshot captures the visible viewport as PNG.
func (d *chromeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close shuts the browser down. Calling it again is a no-op.
func (d *chromeDriver) Close() error {
	var err error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		// chromedp.Cancel closes the browser gracefully and waits for it
		err = chromedp.Cancel(d.ctx)
		d.cancel()
	})
	return err
}
