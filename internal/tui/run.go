package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/controller"
)

// Run starts the interactive screen and blocks until the user quits.
func Run(ctrl *controller.Controller, notices <-chan controller.Notice, log *zap.Logger) error {
	p := tea.NewProgram(New(ctrl, notices, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
