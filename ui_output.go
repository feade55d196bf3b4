package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type eventKind int

const (
	eventStep eventKind = iota
	eventInfo
	eventDone
	eventWarn
	eventFail
)

// reporter receives the human readable progress of a run.
type reporter interface {
	Report(kind eventKind, text string)
}

var (
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	bannerRule = strings.Repeat("=", 50)
)

func (k eventKind) icon() string {
	switch k {
	case eventStep:
		return "→"
	case eventDone:
		return "✓"
	case eventWarn:
		return "!"
	case eventFail:
		return "✗"
	default:
		return "•"
	}
}

func (k eventKind) style() lipgloss.Style {
	switch k {
	case eventStep:
		return stepStyle
	case eventDone:
		return doneStyle
	case eventWarn:
		return warnStyle
	case eventFail:
		return redStyle
	default:
		return infoStyle
	}
}

func formatEvent(kind eventKind, text string) string {
	return kind.style().Render(kind.icon() + " " + text)
}

// lineReporter prints one styled line per event. It is used in CI and
// whenever stdout is not a terminal.
type lineReporter struct {
	mu  sync.Mutex
	out io.Writer
}

func newLineReporter(out io.Writer) *lineReporter {
	return &lineReporter{out: out}
}

func (r *lineReporter) Report(kind eventKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, formatEvent(kind, text))
}

func buildBanner() string {
	var b strings.Builder
	b.WriteString(bannerRule + "\n")
	b.WriteString(boldStyle.Render("ATTENDANCE AUTO CHECK-IN") + "\n")
	b.WriteString(bannerRule)
	return b.String()
}

func buildSummary(ok bool, artifactsDir string) string {
	if ok {
		return doneStyle.Render("✓ Check-in process completed successfully!")
	}
	where := artifactsDir
	if where == "" || where == "." {
		where = "the working directory"
	}
	return redStyle.Render("✗ Check-in failed!") + " " +
		infoStyle.Render(fmt.Sprintf("Check screenshots in %s for details", where))
}
