// Package store defines the record store contract the todo controller
// talks to. Implementations live in subpackages.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

var ErrNotFound = errors.New("todo not found")

// Store lists, creates, updates and deletes todos. IDs and timestamps are
// assigned by the store. List returns records in creation order.
type Store interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, in model.NewTodo) (model.Todo, error)
	Update(ctx context.Context, in model.StatusUpdate) (model.Todo, error)
	Delete(ctx context.Context, id string) error
}
