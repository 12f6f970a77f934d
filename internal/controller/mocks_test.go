package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

var (
	ErrMockList   = errors.New("list error")
	ErrMockCreate = errors.New("create error")
	ErrMockUpdate = errors.New("update error")
	ErrMockDelete = errors.New("delete error")
)

// MockStore is an in-memory store.Store. Setting a *Func field overrides
// the default behavior for that call.
type MockStore struct {
	mu     sync.Mutex
	items  []model.Todo
	nextID int

	ListFunc   func(ctx context.Context) ([]model.Todo, error)
	CreateFunc func(ctx context.Context, in model.NewTodo) (model.Todo, error)
	UpdateFunc func(ctx context.Context, in model.StatusUpdate) (model.Todo, error)
	DeleteFunc func(ctx context.Context, id string) error

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	LastCreate  model.NewTodo
	LastUpdate  model.StatusUpdate
}

var _ store.Store = (*MockStore)(nil)

func NewMockStore(seed ...model.Todo) *MockStore {
	return &MockStore{items: append([]model.Todo(nil), seed...), nextID: len(seed)}
}

func (m *MockStore) List(ctx context.Context) ([]model.Todo, error) {
	m.mu.Lock()
	m.ListCalls++
	fn := m.ListFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Todo{}, m.items...), nil
}

func (m *MockStore) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	m.LastCreate = in
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	m.nextID++
	td := model.Todo{
		ID:       fmt.Sprintf("todo-%d", m.nextID),
		Title:    in.Title,
		Content:  in.Content,
		Status:   in.Status,
		Category: in.Category,
	}
	m.items = append(m.items, td)
	return td, nil
}

func (m *MockStore) Update(ctx context.Context, in model.StatusUpdate) (model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	m.LastUpdate = in
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, in)
	}
	for i := range m.items {
		if m.items[i].ID == in.ID {
			m.items[i].Status = in.Status
			return m.items[i], nil
		}
	}
	return model.Todo{}, store.ErrNotFound
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// recordingNotifier collects notices.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
