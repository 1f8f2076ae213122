package tui

import "vidscribe/types"

// Messages for the tea program (SSE-driven)

// StreamStartedMsg is sent once the process stream is open.
type StreamStartedMsg struct {
	Events <-chan types.StreamEvent
	Err    error
}

// StreamEventMsg carries one event read from the stream. Closed is true
// when the server finished the stream without a terminal event.
type StreamEventMsg struct {
	Event  types.StreamEvent
	Closed bool
}
