package ui

import (
	"strings"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Progress string
	BoxPending, BoxProgress, BoxCompleted                   string
	CornerTL, CornerTR, CornerBL, CornerBR                  string
	H, V                                                    string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow, Progress: fgCyan,
		BoxPending: "☐", BoxProgress: "◐", BoxCompleted: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m", Progress: "\033[94m",
			BoxPending: "◻", BoxProgress: "◧", BoxCompleted: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			BoxPending: "[ ]", BoxProgress: "[~]", BoxCompleted: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default: // classic
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }

// Box returns the symbol and color for a status.
func (t Theme) Box(s model.Status) (symbol, color string) {
	switch s.Effective() {
	case model.StatusInProgress:
		return t.BoxProgress, t.Progress
	case model.StatusCompleted:
		return t.BoxCompleted, t.Success
	}
	return t.BoxPending, t.Pending
}
