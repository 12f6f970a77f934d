// Package view derives the displayed subset of todos from the current
// filter selection.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

// Filter selects which todos are displayed.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterPending    Filter = Filter(model.StatusPending)
	FilterInProgress Filter = Filter(model.StatusInProgress)
	FilterCompleted  Filter = Filter(model.StatusCompleted)
)

// Filters lists every filter in cycle order.
var Filters = []Filter{FilterAll, FilterPending, FilterInProgress, FilterCompleted}

var ErrInvalidFilter = errors.New("invalid filter")

func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, nil
	}
	st, err := model.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return Filter(st), nil
}

func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return model.Status(f).Label()
}

// Apply returns todos unchanged for FilterAll, otherwise the todos whose
// effective status equals the filter. It does not modify todos.
func Apply(todos []model.Todo, f Filter) []model.Todo {
	if f == FilterAll {
		return todos
	}
	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		if Filter(td.EffectiveStatus()) == f {
			out = append(out, td)
		}
	}
	return out
}

// View keeps the visible subset in sync with its source collection and
// filter. The zero value is not usable; call New.
type View struct {
	filter  Filter
	source  []model.Todo
	visible []model.Todo
}

func New() *View {
	return &View{filter: FilterAll}
}

func (v *View) Filter() Filter { return v.filter }

func (v *View) SetFilter(f Filter) {
	v.filter = f
	v.recompute()
}

func (v *View) SetSource(todos []model.Todo) {
	v.source = todos
	v.recompute()
}

func (v *View) Source() []model.Todo { return v.source }

func (v *View) Visible() []model.Todo { return v.visible }

func (v *View) recompute() {
	v.visible = Apply(v.source, v.filter)
}

// Counts tallies the source collection by effective status.
func Counts(todos []model.Todo) map[model.Status]int {
	c := make(map[model.Status]int, len(model.Statuses))
	for _, td := range todos {
		c[td.EffectiveStatus()]++
	}
	return c
}
