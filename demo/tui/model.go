package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vidscribe/types"
)

// State represents the application state machine
type State string

const (
	StateIdle      State = "idle"
	StateStreaming State = "streaming"
	StateComplete  State = "complete"
	StateError     State = "error"
)

// Model represents the TUI client state (thin client)
type Model struct {
	Client   *ProcessClient
	VideoURL string

	// Local UI state (synced from the event stream)
	State    State
	Stage    string
	Progress int
	Logs     []string
	Result   *types.PipelineResult
	Err      error

	events <-chan types.StreamEvent
}

// NewModel creates a new TUI model
func NewModel(serverURL, videoURL string) Model {
	return Model{
		Client:   NewProcessClient(serverURL),
		VideoURL: videoURL,
		State:    StateIdle,
		Logs:     make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends a log line, keeping the last ten
func (m Model) AddLog(message string) Model {
	m.Logs = append(m.Logs, message)
	if len(m.Logs) > 10 {
		m.Logs = m.Logs[len(m.Logs)-10:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready to process!") + "\n\n" +
			InfoStyle.Render("Press 's' to start the pipeline")
	case StateStreaming:
		return StatusStyle.Render(fmt.Sprintf("⏳ %s...", m.Stage))
	case StateComplete:
		return HighlightStyle.Render("✅ ARTICLE READY")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// formatArticleResult formats the finished article for display
func (m Model) formatArticleResult() string {
	result := m.Result
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Generated Article"))
	b.WriteString("\n\n")

	if result.Article != nil {
		b.WriteString(fmt.Sprintf("Title: %s\n", StatusStyle.Render(result.Article.Title)))
		b.WriteString(fmt.Sprintf("Sections: %d | Model: %s\n\n", len(result.Article.Sections), result.Article.Model))

		intro := result.Article.Intro
		if len(intro) > 200 {
			intro = intro[:200] + "..."
		}
		if intro != "" {
			b.WriteString(fmt.Sprintf("Intro Preview:\n%s\n\n", InfoStyle.Render(intro)))
		}

		if len(result.Article.Tags) > 0 {
			b.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(result.Article.Tags, ", ")))
		}
	}

	if result.VideoMetadata != nil {
		b.WriteString(fmt.Sprintf("Source: %s (%s)\n", result.VideoMetadata.Title, result.VideoMetadata.ChannelTitle))
	}
	b.WriteString(fmt.Sprintf("Processing time: %.1fs\n", float64(result.ProcessingTimeMs)/1000))

	return b.String()
}
