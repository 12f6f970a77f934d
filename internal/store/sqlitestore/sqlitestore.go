// Package sqlitestore keeps todos in a SQLite database.
package sqlitestore

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

const DefaultFileName = "todos.db"

type Store struct {
	db  *sql.DB
	now func() time.Time

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var _ store.Store = (*Store)(nil)

// Open creates the database file and schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &Store{db: db, now: time.Now, entropy: ulid.Monotonic(rand.Reader, 0)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT,
			category TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) newID(t time.Time) string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// ULIDs sort by creation time, so ordering by id keeps creation order.
func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, status, category, created_at, updated_at
		FROM todos ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	items := []model.Todo{}
	for rows.Next() {
		td, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return items, nil
}

func (s *Store) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	now := s.now().UTC()
	td := model.Todo{
		ID:        s.newID(now),
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
	cat, err := json.Marshal(td.Category)
	if err != nil {
		return model.Todo{}, fmt.Errorf("marshal category: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO todos (id, title, content, status, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, td.ID, td.Title, td.Content, nullStatus(td.Status), string(cat),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return model.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return td, nil
}

func (s *Store) Update(ctx context.Context, in model.StatusUpdate) (model.Todo, error) {
	now := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET status = ?, updated_at = ? WHERE id = ?`,
		nullStatus(in.Status), now.Format(time.RFC3339Nano), in.ID)
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Todo{}, fmt.Errorf("update %s: %w", in.ID, store.ErrNotFound)
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, status, category, created_at, updated_at
		FROM todos WHERE id = ?
	`, in.ID)
	return scanTodo(row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %s: %w", id, store.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(sc scanner) (model.Todo, error) {
	var (
		td               model.Todo
		status           sql.NullString
		cat              string
		created, updated string
	)
	if err := sc.Scan(&td.ID, &td.Title, &td.Content, &status, &cat, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, store.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("scan todo: %w", err)
	}
	td.Status = model.Status(status.String)
	if err := json.Unmarshal([]byte(cat), &td.Category); err != nil {
		return model.Todo{}, fmt.Errorf("decode category for %s: %w", td.ID, err)
	}
	if td.Category == nil {
		td.Category = []string{}
	}
	var err error
	if td.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return model.Todo{}, fmt.Errorf("parse created_at: %w", err)
	}
	if td.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return model.Todo{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return td, nil
}

func nullStatus(s model.Status) sql.NullString {
	return sql.NullString{String: string(s), Valid: s != ""}
}
