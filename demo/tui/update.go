package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"vidscribe/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case StreamStartedMsg:
		return m.handleStreamStarted(msg)
	case StreamEventMsg:
		return m.handleStreamEvent(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		if m.State == StateIdle {
			m.State = StateStreaming
			m.Stage = "Connecting"
			m = m.AddLog("Starting pipeline for " + m.VideoURL)
			return m, startStream(m.Client, m.VideoURL)
		}
	}
	return m, nil
}

// handleStreamStarted processes the stream opening
func (m Model) handleStreamStarted(msg StreamStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = fmt.Errorf("failed to open stream: %w", msg.Err)
		return m, nil
	}
	m.events = msg.Events
	m = m.AddLog("Stream connected")
	return m, waitForEvent(m.events)
}

// handleStreamEvent processes one decoded SSE event
func (m Model) handleStreamEvent(msg StreamEventMsg) (tea.Model, tea.Cmd) {
	if msg.Closed {
		if m.State == StateStreaming {
			m.State = StateError
			m.Err = errors.New("stream ended unexpectedly")
		}
		return m, nil
	}

	switch msg.Event.Type {
	case types.EventProgress:
		if msg.Event.Status != nil {
			m.Stage = msg.Event.Status.Stage
			m.Progress = msg.Event.Status.Progress
			m = m.AddLog(fmt.Sprintf("[%3d%%] %s", msg.Event.Status.Progress, msg.Event.Status.Message))
		}
	case types.EventResult:
		m.Result = msg.Event.Result
		m.Progress = 100
		m.State = StateComplete
		m = m.AddLog("Article generation complete!")
		return m, nil
	case types.EventError:
		m.State = StateError
		m.Err = errors.New(msg.Event.Error)
		if msg.Event.Result != nil {
			m.Result = msg.Event.Result
		}
		return m, nil
	}

	return m, waitForEvent(m.events)
}
