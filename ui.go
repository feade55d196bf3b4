package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

type progressMsg struct {
	kind eventKind
	text string
}

// finishedMsg ends the progress view once the run has returned.
type finishedMsg struct{}

type model struct {
	spinner   spinner.Model
	lines     []progressMsg
	current   string // step in progress, shown next to the spinner
	quitting  bool
	interrupt func()
}

func newModel(interrupt func()) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return model{
		spinner:   s,
		interrupt: interrupt,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.interrupt != nil {
				m.interrupt()
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		if m.current != "" {
			m.lines = append(m.lines, progressMsg{kind: eventStep, text: m.current})
			m.current = ""
		}
		if msg.kind == eventStep {
			m.current = msg.text
		} else {
			m.lines = append(m.lines, msg)
		}
		return m, nil

	case finishedMsg:
		m.current = ""
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	var s strings.Builder
	for _, line := range m.lines {
		s.WriteString(formatEvent(line.kind, line.text) + "\n")
	}
	if m.current != "" {
		s.WriteString(m.spinner.View() + " " + m.current + "\n")
	}
	if !m.quitting {
		s.WriteString(helpStyle.Render("q abort"))
	}
	return appStyle.Render(s.String())
}

// teaReporter forwards events to a running bubbletea program.
type teaReporter struct {
	p    *tea.Program
	done chan struct{}
}

func startProgressView(out io.Writer, interrupt func()) *teaReporter {
	r := &teaReporter{
		p:    tea.NewProgram(newModel(interrupt), tea.WithOutput(out)),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		if _, err := r.p.Run(); err != nil {
			slog.Error("Error running UI:", "error", err)
		}
	}()
	return r
}

func (r *teaReporter) Report(kind eventKind, text string) {
	r.p.Send(progressMsg{kind: kind, text: text})
}

// Stop closes the view and waits for the terminal to be restored.
func (r *teaReporter) Stop() {
	r.p.Send(finishedMsg{})
	<-r.done
}
