package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"vidscribe/types"
)

// startStream creates a command that opens the process stream
func startStream(client *ProcessClient, videoURL string) tea.Cmd {
	return func() tea.Msg {
		events, err := client.Stream(videoURL, types.GenerationOptions{})
		return StreamStartedMsg{Events: events, Err: err}
	}
}

// waitForEvent creates a command that blocks for the next stream event
func waitForEvent(events <-chan types.StreamEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return StreamEventMsg{Closed: true}
		}
		return StreamEventMsg{Event: event}
	}
}
