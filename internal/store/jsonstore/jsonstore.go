package jsonstore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// The mutex serializes access within one process only.

const DefaultFileName = "todos.json"

type Store struct {
	path    string
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

var _ store.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path, now: time.Now, entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (s *Store) Path() string { return s.path }

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	now := s.now().UTC()
	td := model.Todo{
		ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		Title:     in.Title,
		Content:   in.Content,
		Status:    in.Status,
		Category:  in.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if td.Category == nil {
		td.Category = []string{}
	}
	items = append(items, td)
	if err := s.save(items); err != nil {
		return model.Todo{}, err
	}
	return td, nil
}

func (s *Store) Update(ctx context.Context, in model.StatusUpdate) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	for i := range items {
		if items[i].ID != in.ID {
			continue
		}
		items[i].Status = in.Status
		items[i].UpdatedAt = s.now().UTC()
		if err := s.save(items); err != nil {
			return model.Todo{}, err
		}
		return items[i], nil
	}
	return model.Todo{}, fmt.Errorf("update %s: %w", in.ID, store.ErrNotFound)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			return s.save(items)
		}
	}
	return fmt.Errorf("delete %s: %w", id, store.ErrNotFound)
}

func (s *Store) load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Todo
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Todo{}
	}
	return items, nil
}

func (s *Store) save(items []model.Todo) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
