package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/ui"
)

// listItem adapts a Todo to bubbles/list.Item
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string {
	return i.todo.Title + " " + strings.Join(i.todo.Category, " ")
}

func toItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, td := range todos {
		out = append(out, listItem{todo: td})
	}
	return out
}

// Custom delegate to control how items render (two lines: title, details)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	td := it.todo
	width := m.Width() - 4
	if width < 20 {
		width = 20
	}

	title := ui.Truncate(td.Title, width-4)
	if td.EffectiveStatus() == model.StatusCompleted {
		title = doneStyle.Render(title)
	}

	details := mutedStyle.Render(td.EffectiveStatus().Label())
	if len(td.Category) > 0 {
		details += labelStyle.Render("  #" + strings.Join(td.Category, " #"))
	}
	if c := firstLine(td.Content); c != "" {
		details += mutedStyle.Render("  " + ui.Truncate(c, width/2))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s\n    %s", prefix, statusBox(td.Status), title, details)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
