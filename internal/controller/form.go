package controller

import (
	"context"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

// Creator is the part of Controller a Form submits to.
type Creator interface {
	Create(ctx context.Context, title, content string, status model.Status, rawCategory string) (bool, error)
}

// Form holds the transient input of the creation form.
type Form struct {
	Title    string
	Content  string
	Status   model.Status
	Category string // raw comma separated text
}

func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

func (f *Form) Reset() {
	*f = Form{Status: model.StatusPending}
}

// Submit hands the current input to c and then resets the form, whether or
// not the create succeeded.
func (f *Form) Submit(ctx context.Context, c Creator) (bool, error) {
	defer f.Reset()
	return c.Create(ctx, f.Title, f.Content, f.Status, f.Category)
}
