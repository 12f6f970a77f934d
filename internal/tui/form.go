package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada-cloud/internal/controller"
	"github.com/idilsaglam/tada-cloud/internal/model"
)

type formField int

const (
	fieldTitle formField = iota
	fieldContent
	fieldStatus
	fieldCategory
	fieldCount
)

// formModel is the on-screen creation form. Its values mirror a
// controller.Form.
type formModel struct {
	title    textinput.Model
	content  textarea.Model
	status   model.Status
	category textinput.Model
	focus    formField
}

func newFormModel() formModel {
	f := formModel{}
	f.title = textinput.New()
	f.title.Prompt = "> "
	f.title.Placeholder = "Title"
	f.title.CharLimit = 200

	f.content = textarea.New()
	f.content.Placeholder = "Content"
	f.content.ShowLineNumbers = false
	f.content.CharLimit = 0
	f.content.SetHeight(3)
	f.content.SetWidth(60)

	f.category = textinput.New()
	f.category.Prompt = "> "
	f.category.Placeholder = "Categories (comma separated)"
	f.category.CharLimit = 200

	f.status = model.StatusPending
	return f
}

// data copies the current input into a controller.Form.
func (f formModel) data() controller.Form {
	return controller.Form{
		Title:    f.title.Value(),
		Content:  f.content.Value(),
		Status:   f.status,
		Category: f.category.Value(),
	}
}

// load replaces the visible values, e.g. after the form was reset.
func (f *formModel) load(d controller.Form) {
	f.title.SetValue(d.Title)
	f.content.SetValue(d.Content)
	f.status = d.Status
	f.category.SetValue(d.Category)
}

func (f *formModel) setWidth(w int) {
	if w < 20 {
		w = 20
	}
	f.title.Width = w
	f.category.Width = w
	f.content.SetWidth(w)
}

func (f *formModel) focusField(field formField) tea.Cmd {
	f.title.Blur()
	f.content.Blur()
	f.category.Blur()
	f.focus = (field + fieldCount) % fieldCount
	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldContent:
		return f.content.Focus()
	case fieldCategory:
		return f.category.Focus()
	}
	return nil
}

func (f *formModel) blur() {
	f.title.Blur()
	f.content.Blur()
	f.category.Blur()
}

// update routes a key to the focused field. tab/shift+tab move focus and
// left/right cycle the status selector.
func (f *formModel) update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			return f.focusField(f.focus + 1)
		case "shift+tab":
			return f.focusField(f.focus - 1)
		}
		if f.focus == fieldStatus {
			switch k.String() {
			case "right", "l", " ":
				f.status = f.status.Next()
			case "left", "h":
				f.status = f.status.Next().Next()
			case "enter", "down":
				return f.focusField(fieldCategory)
			case "up":
				return f.focusField(fieldContent)
			}
			return nil
		}
		if k.String() == "enter" && f.focus != fieldContent {
			return f.focusField(f.focus + 1)
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	}
	return cmd
}

func (f formModel) view() string {
	label := func(field formField, s string) string {
		if f.focus == field {
			return focusStyle.Render(s)
		}
		return labelStyle.Render(s)
	}

	var statuses []string
	for _, s := range model.Statuses {
		txt := s.Label()
		if s == f.status.Effective() {
			txt = statusStyle(s).Bold(true).Render("[" + txt + "]")
		} else {
			txt = mutedStyle.Render(" " + txt + " ")
		}
		statuses = append(statuses, txt)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("New todo") + "\n")
	b.WriteString(label(fieldTitle, "Title") + "\n" + f.title.View() + "\n")
	b.WriteString(label(fieldContent, "Content") + "\n" + f.content.View() + "\n")
	b.WriteString(label(fieldStatus, "Status") + "  " + strings.Join(statuses, " ") + "\n")
	b.WriteString(label(fieldCategory, "Category") + "\n" + f.category.View() + "\n")
	b.WriteString(helpStyle.Render("tab next • ←/→ status • ctrl+s save • esc cancel"))
	return b.String()
}
