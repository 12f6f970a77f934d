package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/controller"
	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/ui"
	"github.com/idilsaglam/tada-cloud/internal/view"
)

const statusTTL = 4 * time.Second

type mode int

const (
	modeBrowse mode = iota
	modeForm
)

// Messages
type (
	// opDoneMsg arrives when a controller call, including its refresh, returns.
	opDoneMsg struct {
		op  string
		err error
	}
	submittedMsg struct {
		created bool
		err     error
	}
	noticeMsg      controller.Notice
	clearStatusMsg struct{ seq int }
)

type keyMap struct {
	add, status, remove, filter, refresh, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		status:  key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "next status")),
		remove:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the todo screen: a filtered list plus
// the creation form.
type Model struct {
	ctrl    *controller.Controller
	view    *view.View
	notices <-chan controller.Notice
	log     *zap.Logger

	list    list.Model
	form    formModel
	spinner spinner.Model
	keys    keyMap

	mode      mode
	busy      int
	statusMsg string
	statusErr bool
	statusSeq int
	width     int
	height    int
}

// New builds the model. notices, when non-nil, should be the channel the
// controller's ChanNotifier writes to.
func New(ctrl *controller.Controller, notices <-chan controller.Notice, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	// q/esc are handled by Model.
	l.KeyMap.Quit.SetEnabled(false)
	// f and d are ours
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown")
	l.KeyMap.PrevPage.SetKeys("left", "h", "pgup", "b")
	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.status, keys.remove, keys.filter, keys.refresh}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))

	return Model{
		ctrl:    ctrl,
		view:    view.New(),
		notices: notices,
		log:     log,
		list:    l,
		form:    newFormModel(),
		spinner: sp,
		keys:    keys,
		busy:    1, // the refresh issued by Init
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.waitForNotice())
}

// -------------- commands ----------------

func (m Model) refresh() tea.Cmd {
	return m.run(controller.OpList, m.ctrl.Refresh)
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

func (m Model) submit() tea.Cmd {
	data := m.form.data()
	ctrl := m.ctrl
	return func() tea.Msg {
		created, err := data.Submit(context.Background(), ctrl)
		return submittedMsg{created: created, err: err}
	}
}

func (m Model) waitForNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	ch := m.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m *Model) flash(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusMsg = msg
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// sync pulls the authoritative collection and recomputes the visible subset.
func (m *Model) sync() tea.Cmd {
	m.view.SetSource(m.ctrl.Todos())
	return m.list.SetItems(toItems(m.view.Visible()))
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// -------------- update ----------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		if msg.err != nil {
			m.log.Debug("operation failed", zap.String("op", msg.op), zap.Error(msg.err))
		}
		return m, m.sync()

	case submittedMsg:
		if m.busy > 0 {
			m.busy--
		}
		// the controller.Form reset itself; mirror it on screen
		m.form.load(*controller.NewForm())
		cmds := []tea.Cmd{m.sync()}
		if msg.created && msg.err == nil {
			cmds = append(cmds, m.flash("added", false))
		}
		return m, tea.Batch(cmds...)

	case noticeMsg:
		return m, tea.Batch(
			m.flash(controller.Notice(msg).String(), true),
			m.waitForNotice(),
		)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.mode = modeBrowse
		m.form.blur()
		m.resize()
		return m, nil
	case msg.String() == "ctrl+s",
		msg.String() == "enter" && m.form.focus == fieldCategory:
		cmd := m.submit()
		m.mode = modeBrowse
		m.form.blur()
		m.busy++
		m.resize()
		return m, cmd
	}
	return m, m.form.update(msg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// while the list's own fuzzy filter is being typed, keys belong to it
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		if msg.String() == "esc" && m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.add):
		m.mode = modeForm
		m.resize()
		return m, m.form.focusField(fieldTitle)

	case key.Matches(msg, m.keys.filter):
		m.view.SetFilter(m.view.Filter().Next())
		return m, m.list.SetItems(toItems(m.view.Visible()))

	case key.Matches(msg, m.keys.refresh):
		m.busy++
		return m, m.refresh()

	case key.Matches(msg, m.keys.status):
		td, ok := m.selected()
		if !ok {
			return m, nil
		}
		next := td.EffectiveStatus().Next()
		m.busy++
		return m, m.run(controller.OpUpdate, func(ctx context.Context) error {
			return m.ctrl.SetStatus(ctx, td.ID, next)
		})

	case key.Matches(msg, m.keys.remove):
		td, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.busy++
		return m, m.run(controller.OpDelete, func(ctx context.Context) error {
			return m.ctrl.Remove(ctx, td.ID)
		})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// -------------- view ----------------

func (m *Model) resize() {
	w := m.width - 4
	h := m.height - 6
	if m.mode == modeForm {
		h -= 14
	}
	if h < 4 {
		h = 4
	}
	m.list.SetSize(w, h)
	m.form.setWidth(w - 4)
}

func (m Model) header() string {
	all := m.view.Source()
	counts := view.Counts(all)
	done := counts[model.StatusCompleted]
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d   %s %s",
		titleStyle.Render("Todos"),
		statusBox(model.StatusPending), counts[model.StatusPending],
		statusBox(model.StatusInProgress), counts[model.StatusInProgress],
		statusBox(model.StatusCompleted), done,
		accentStyle.Render("Total"), len(all),
		mutedStyle.Render("filter:"), accentStyle.Render(m.view.Filter().Label()),
	) + "\n" + mutedStyle.Render(ui.ProgressBar(done, len(all), 28))
}

func (m Model) statusLine() string {
	var parts []string
	if m.busy > 0 {
		parts = append(parts, m.spinner.View()+" syncing")
	}
	if m.statusMsg != "" {
		if m.statusErr {
			parts = append(parts, errorStyle.Render("✖ "+m.statusMsg))
		} else {
			parts = append(parts, successStyle.Render("✔ "+m.statusMsg))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) View() string {
	m.list.Title = m.header()
	content := m.list.View()
	if m.mode == modeForm {
		content += "\n" + frameStyle.Render(m.form.view())
	}
	if s := m.statusLine(); s != "" {
		content += "\n" + s
	}
	return frameStyle.Render(content)
}
