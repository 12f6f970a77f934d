// Package controller keeps a local copy of the todo collection consistent
// with a record store.
//
// Every mutation is followed by a full refresh; the local collection is
// replaced wholesale with whatever the store returned last. Refreshes are
// not serialized: when two mutations overlap, the refresh that completes
// last determines the collection, even if it was issued first.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

// Operation names carried by notices.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type Controller struct {
	store    store.Store
	notifier Notifier
	onChange func([]model.Todo)
	log      *zap.Logger

	mu    sync.RWMutex
	todos []model.Todo
}

type Option func(*Controller)

// WithNotifier receives a notice for every failed store call.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithOnChange is called with the new collection after each successful refresh.
func WithOnChange(fn func([]model.Todo)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    s,
		notifier: NopNotifier{},
		log:      zap.NewNop(),
		todos:    []model.Todo{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Todos returns a copy of the authoritative collection.
func (c *Controller) Todos() []model.Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Todo, len(c.todos))
	copy(out, c.todos)
	return out
}

// Refresh replaces the local collection with the store's. On failure the
// previous collection is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return c.fail(OpList, "", fmt.Errorf("list todos: %w", err))
	}
	if items == nil {
		items = []model.Todo{}
	}

	c.mu.Lock()
	c.todos = items
	c.mu.Unlock()

	c.log.Debug("refreshed", zap.Int("count", len(items)))
	if c.onChange != nil {
		c.onChange(c.Todos())
	}
	return nil
}

// Draft builds a create payload from raw form input. ok is false when the
// trimmed title or content is empty. An empty status means pending.
func Draft(title, content string, status model.Status, rawCategory string) (in model.NewTodo, ok bool, err error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return model.NewTodo{}, false, nil
	}
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return model.NewTodo{}, false, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	return model.NewTodo{
		Title:    title,
		Content:  content,
		Status:   status,
		Category: model.ParseCategories(rawCategory),
	}, true, nil
}

// Create submits a new todo and refreshes. Input with an empty title or
// content is dropped without touching the store; created reports whether
// anything was submitted.
func (c *Controller) Create(ctx context.Context, title, content string, status model.Status, rawCategory string) (created bool, err error) {
	in, ok, err := Draft(title, content, status, rawCategory)
	if err != nil || !ok {
		return false, err
	}
	td, err := c.store.Create(ctx, in)
	if err != nil {
		return false, c.fail(OpCreate, "", fmt.Errorf("create todo: %w", err))
	}
	c.log.Info("created", zap.String("id", td.ID), zap.String("title", td.Title))
	return true, c.Refresh(ctx)
}

// SetStatus sends a partial update carrying only id and status, then refreshes.
func (c *Controller) SetStatus(ctx context.Context, id string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	if _, err := c.store.Update(ctx, model.StatusUpdate{ID: id, Status: status}); err != nil {
		return c.fail(OpUpdate, id, fmt.Errorf("update todo %s: %w", id, err))
	}
	c.log.Info("status changed", zap.String("id", id), zap.String("status", string(status)))
	return c.Refresh(ctx)
}

// Remove deletes the todo with id, then refreshes.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail(OpDelete, id, fmt.Errorf("delete todo %s: %w", id, err))
	}
	c.log.Info("removed", zap.String("id", id))
	return c.Refresh(ctx)
}

func (c *Controller) fail(op, id string, err error) error {
	c.log.Warn("store call failed", zap.String("op", op), zap.String("id", id), zap.Error(err))
	n := Notice{Op: op, ID: id, Err: err}
	if tn, ok := c.notifier.(tryNotifier); ok {
		if !tn.TryNotify(n) {
			c.log.Error("notice dropped", zap.String("op", op), zap.String("id", id), zap.Error(err))
		}
		return err
	}
	c.notifier.Notify(n)
	return err
}
