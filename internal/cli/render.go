package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/ui"
	"github.com/idilsaglam/tada-cloud/internal/view"
)

// numbered pairs a todo with its 1-based position in the full list, so
// indexes printed under a filter still work with status and rm.
type numbered struct {
	n    int
	todo model.Todo
}

func number(all, visible []model.Todo) []numbered {
	pos := make(map[string]int, len(all))
	for i, td := range all {
		pos[td.ID] = i + 1
	}
	out := make([]numbered, 0, len(visible))
	for _, td := range visible {
		out = append(out, numbered{n: pos[td.ID], todo: td})
	}
	return out
}

func listPanel(all []model.Todo, f view.Filter, group bool) []string {
	t := ui.Current()
	counts := view.Counts(all)
	done := counts[model.StatusCompleted]

	// Header + progress
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Pending, t.BoxPending), counts[model.StatusPending],
		ui.C(t.Progress, t.BoxProgress), counts[model.StatusInProgress],
		ui.C(t.Success, t.BoxCompleted), done,
		ui.C(t.Accent, "Total"), len(all),
	)
	if f != view.FilterAll {
		header += "  " + ui.C(t.Muted, "filter: "+f.Label())
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(done, len(all), 28)))
	lines = append(lines, "")

	rows := number(all, view.Apply(all, f))
	if group {
		lines = append(lines, groupLines(rows)...)
	} else {
		lines = append(lines, flatLines(rows)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\" --content \"2 liters\"`"))
	return lines
}

func flatLines(rows []numbered) []string {
	t := ui.Current()
	if len(rows) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		idx := fmt.Sprintf("%2d.", r.n)
		box, color := t.Box(r.todo.Status)
		line := fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), ui.Truncate(r.todo.Title, 60))
		if len(r.todo.Category) > 0 {
			line += " " + ui.C(t.Accent, "#"+strings.Join(r.todo.Category, " #"))
		}
		out = append(out, line)
	}
	return out
}

func groupLines(rows []numbered) []string {
	t := ui.Current()
	by := make(map[model.Status][]numbered, len(model.Statuses))
	for _, r := range rows {
		s := r.todo.EffectiveStatus()
		by[s] = append(by[s], r)
	}
	var lines []string
	for i, s := range model.Statuses {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.C(t.Accent, s.Label()))
		if len(by[s]) == 0 {
			lines = append(lines, ui.C(t.Muted, "(none)"))
			continue
		}
		lines = append(lines, flatLines(by[s])...)
	}
	return lines
}

// markdown is the document `tada show` renders.
func markdown(td model.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", td.Title)
	fmt.Fprintf(&b, "**Status:** %s\n\n", td.EffectiveStatus().Label())
	if len(td.Category) > 0 {
		fmt.Fprintf(&b, "**Categories:** %s\n\n", strings.Join(td.Category, ", "))
	}
	if !td.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "*Created %s", td.CreatedAt.Local().Format("2006-01-02 15:04"))
		if !td.UpdatedAt.IsZero() && !td.UpdatedAt.Equal(td.CreatedAt) {
			fmt.Fprintf(&b, ", updated %s", td.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		b.WriteString("*\n\n")
	}
	b.WriteString("---\n\n")
	b.WriteString(td.Content)
	b.WriteString("\n\n`" + td.ID + "`\n")
	return b.String()
}

func renderMarkdown(doc string, width int) (string, error) {
	style := "notty"
	if ui.ColorEnabled() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return out, nil
}
