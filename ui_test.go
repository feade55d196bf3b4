package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_TracksCurrentStep(t *testing.T) {
	var m tea.Model = newModel(nil)

	m, _ = m.Update(progressMsg{kind: eventStep, text: "Logging in..."})
	assert.Equal(t, "Logging in...", m.(model).current)
	assert.Contains(t, m.View(), "Logging in...")

	m, _ = m.Update(progressMsg{kind: eventDone, text: "Login successful!"})
	got := m.(model)
	assert.Empty(t, got.current)
	require.Len(t, got.lines, 2)
	assert.Equal(t, progressMsg{kind: eventStep, text: "Logging in..."}, got.lines[0])
	assert.Equal(t, progressMsg{kind: eventDone, text: "Login successful!"}, got.lines[1])
}

func TestModel_FinishedQuits(t *testing.T) {
	m, cmd := newModel(nil).Update(finishedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.(model).quitting)
}

func TestModel_AbortKeyInterrupts(t *testing.T) {
	interrupted := false
	m := newModel(func() { interrupted = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, interrupted)
}

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := newLineReporter(&buf)

	r.Report(eventStep, "Navigating to login page...")
	r.Report(eventFail, "Could not determine check-in status")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "→ Navigating to login page...")
	assert.Contains(t, lines[1], "✗ Could not determine check-in status")
}

func TestBuildSummary(t *testing.T) {
	assert.Contains(t, buildSummary(true, "."), "completed successfully")
	assert.Contains(t, buildSummary(false, "."), "the working directory")
	assert.Contains(t, buildSummary(false, "/tmp/shots"), "/tmp/shots")
}
