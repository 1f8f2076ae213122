package tui

import (
	"fmt"
	"strings"
)

const progressBarWidth = 30

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("📝 VidScribe Pipeline Demo"))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render("Video: " + m.VideoURL))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Progress bar
	if m.State == StateStreaming || m.State == StateComplete {
		b.WriteString(m.renderProgressBar())
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Results
	if m.Result != nil && (m.State == StateComplete || m.State == StateError) {
		b.WriteString(BoxStyle.Render(m.formatArticleResult()))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 's' to start | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// renderProgressBar draws a fixed-width bar for the current progress value
func (m Model) renderProgressBar() string {
	filled := m.Progress * progressBarWidth / 100
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("%s %3d%%", bar, m.Progress)
}
