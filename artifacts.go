package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yosssi/gohtml"
)

// screenshot and page dump file names written during a run
const (
	shotAlreadyCheckedIn = "already_checked_in.png"
	shotBeforeCheckIn    = "before_checkin.png"
	shotAfterCheckIn     = "after_checkin.png"
	shotNoButton         = "no_button_found.png"
	shotError            = "error_screenshot.png"
	dumpError            = "error_page.html"
)

const artifactTimeout = 10 * time.Second

// artifacts writes diagnostic files. Every write is best-effort: failures
// are logged and never change the outcome of a run.
type artifacts struct {
	dir string
}

func (a artifacts) path(name string) string {
	if a.dir == "" {
		return name
	}
	return filepath.Join(a.dir, name)
}

func (a artifacts) screenshot(ctx context.Context, drv driver, name string) string {
	var buf []byte
	err := withTimeout(ctx, artifactTimeout, func(ctx context.Context) error {
		var err error
		buf, err = drv.Screenshot(ctx)
		return err
	})
	if err != nil {
		slog.Warn("Failed to capture screenshot", "file", name, "error", err)
		return ""
	}
	return a.write(name, buf)
}

// pageDump saves the current DOM, indented for reading.
func (a artifacts) pageDump(ctx context.Context, drv driver, name string) string {
	var markup string
	err := withTimeout(ctx, artifactTimeout, func(ctx context.Context) error {
		var err error
		markup, err = drv.HTML(ctx)
		return err
	})
	if err != nil {
		slog.Warn("Failed to read page HTML", "file", name, "error", err)
		return ""
	}
	return a.write(name, []byte(gohtml.Format(markup)))
}

func (a artifacts) write(name string, data []byte) string {
	p := a.path(name)
	if a.dir != "" {
		if err := os.MkdirAll(a.dir, 0755); err != nil {
			slog.Warn("Failed to create artifacts dir", "dir", a.dir, "error", err)
			return ""
		}
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		slog.Warn(fmt.Sprintf("Failed to write %s", name), "path", p, "error", err)
		return ""
	}
	slog.Info("Saved artifact", "path", p, "bytes", len(data))
	return p
}
