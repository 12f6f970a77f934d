package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

var statusBoxes = map[model.Status]string{
	model.StatusPending:    "☐",
	model.StatusInProgress: "◐",
	model.StatusCompleted:  "☑",
}

func statusStyle(s model.Status) lipgloss.Style {
	switch s.Effective() {
	case model.StatusInProgress:
		return progressStyle
	case model.StatusCompleted:
		return successStyle
	}
	return pendingStyle
}

func statusBox(s model.Status) string {
	return statusStyle(s).Render(statusBoxes[s.Effective()])
}
