package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seeded() *MockStore {
	return NewMockStore(
		model.Todo{ID: "a", Title: "A", Content: "a", Status: model.StatusPending},
		model.Todo{ID: "b", Title: "B", Content: "b", Status: model.StatusInProgress},
	)
}

func findTodo(todos []model.Todo, id string) (model.Todo, bool) {
	for _, td := range todos {
		if td.ID == id {
			return td, true
		}
	}
	return model.Todo{}, false
}

func TestRefreshReplacesWholesale(t *testing.T) {
	ms := seeded()
	c := New(ms)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Todos(), 2)

	ms.ListFunc = func(ctx context.Context) ([]model.Todo, error) {
		return []model.Todo{{ID: "z", Title: "Z", Content: "z"}}, nil
	}
	require.NoError(t, c.Refresh(context.Background()))
	todos := c.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "z", todos[0].ID)
}

func TestRefreshFailureKeepsPriorState(t *testing.T) {
	ms := seeded()
	rec := &recordingNotifier{}
	c := New(ms, WithNotifier(rec))
	require.NoError(t, c.Refresh(context.Background()))

	ms.ListFunc = func(ctx context.Context) ([]model.Todo, error) { return nil, ErrMockList }
	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMockList))
	assert.Len(t, c.Todos(), 2)

	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, OpList, notices[0].Op)
	assert.True(t, errors.Is(notices[0].Err, ErrMockList))
}

func TestTodosReturnsCopy(t *testing.T) {
	c := New(seeded())
	require.NoError(t, c.Refresh(context.Background()))
	todos := c.Todos()
	todos[0].Title = "mutated"
	assert.Equal(t, "A", c.Todos()[0].Title)
}

func TestOnChangeFiresAfterRefresh(t *testing.T) {
	var got [][]model.Todo
	c := New(seeded(), WithOnChange(func(todos []model.Todo) { got = append(got, todos) }))
	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, got, 1)
	assert.Len(t, got[0], 2)
}

func TestCreateNoopOnBlankInput(t *testing.T) {
	tests := []struct {
		name           string
		title, content string
	}{
		{"empty title", "", "content"},
		{"blank title", "   ", "content"},
		{"empty content", "title", ""},
		{"blank content", "title", "\t\n"},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := NewMockStore()
			rec := &recordingNotifier{}
			c := New(ms, WithNotifier(rec))
			created, err := c.Create(context.Background(), tt.title, tt.content, model.StatusPending, "x")
			assert.NoError(t, err)
			assert.False(t, created)
			assert.Zero(t, ms.CreateCalls)
			assert.Zero(t, ms.ListCalls)
			assert.Empty(t, rec.all())
		})
	}
}

func TestCreateBuildsPayloadAndRefreshes(t *testing.T) {
	ms := NewMockStore()
	c := New(ms)
	created, err := c.Create(context.Background(), "  Buy milk ", " 2% ", model.StatusInProgress, " errand, ,home,")
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, model.NewTodo{
		Title:    "Buy milk",
		Content:  "2%",
		Status:   model.StatusInProgress,
		Category: []string{"errand", "home"},
	}, ms.LastCreate)
	assert.Equal(t, 1, ms.ListCalls)
	require.Len(t, c.Todos(), 1)
	assert.Equal(t, "Buy milk", c.Todos()[0].Title)
}

func TestCreateDefaultsStatusToPending(t *testing.T) {
	ms := NewMockStore()
	_, err := New(ms).Create(context.Background(), "t", "c", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, ms.LastCreate.Status)
	assert.Equal(t, []string{}, ms.LastCreate.Category)
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	ms := NewMockStore()
	_, err := New(ms).Create(context.Background(), "t", "c", "archived", "")
	assert.True(t, errors.Is(err, model.ErrInvalidStatus))
	assert.Zero(t, ms.CreateCalls)
}

func TestCreateFailureNotifiesAndSkipsRefresh(t *testing.T) {
	ms := seeded()
	ms.CreateFunc = func(ctx context.Context, in model.NewTodo) (model.Todo, error) {
		return model.Todo{}, ErrMockCreate
	}
	rec := &recordingNotifier{}
	c := New(ms, WithNotifier(rec))
	require.NoError(t, c.Refresh(context.Background()))

	created, err := c.Create(context.Background(), "t", "c", model.StatusPending, "")
	assert.False(t, created)
	assert.True(t, errors.Is(err, ErrMockCreate))
	assert.Equal(t, 1, ms.ListCalls)
	assert.Len(t, c.Todos(), 2)

	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, OpCreate, notices[0].Op)
}

func TestSetStatusThenRefresh(t *testing.T) {
	ms := seeded()
	c := New(ms)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.SetStatus(context.Background(), "a", model.StatusCompleted))
	assert.Equal(t, model.StatusUpdate{ID: "a", Status: model.StatusCompleted}, ms.LastUpdate)

	td, ok := findTodo(c.Todos(), "a")
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, td.Status)
	assert.Equal(t, 2, ms.ListCalls)
}

func TestSetStatusInvalid(t *testing.T) {
	ms := seeded()
	err := New(ms).SetStatus(context.Background(), "a", "")
	assert.True(t, errors.Is(err, model.ErrInvalidStatus))
	assert.Zero(t, ms.UpdateCalls)
}

func TestSetStatusUnknownID(t *testing.T) {
	ms := seeded()
	rec := &recordingNotifier{}
	err := New(ms, WithNotifier(rec)).SetStatus(context.Background(), "missing", model.StatusCompleted)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	require.Len(t, rec.all(), 1)
	assert.Equal(t, Notice{Op: OpUpdate, ID: "missing", Err: err}, rec.all()[0])
	assert.Zero(t, ms.ListCalls)
}

func TestRemoveThenRefresh(t *testing.T) {
	ms := seeded()
	c := New(ms)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Remove(context.Background(), "a"))
	_, ok := findTodo(c.Todos(), "a")
	assert.False(t, ok)
	assert.Len(t, c.Todos(), 1)
}

func TestRemoveFailureKeepsState(t *testing.T) {
	ms := seeded()
	ms.DeleteFunc = func(ctx context.Context, id string) error { return ErrMockDelete }
	rec := &recordingNotifier{}
	c := New(ms, WithNotifier(rec))
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Remove(context.Background(), "a")
	assert.True(t, errors.Is(err, ErrMockDelete))
	assert.Len(t, c.Todos(), 2)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, OpDelete, rec.all()[0].Op)
}

func TestMutationSucceedsButRefreshFails(t *testing.T) {
	ms := seeded()
	rec := &recordingNotifier{}
	c := New(ms, WithNotifier(rec))
	require.NoError(t, c.Refresh(context.Background()))

	ms.ListFunc = func(ctx context.Context) ([]model.Todo, error) { return nil, ErrMockList }
	err := c.Remove(context.Background(), "a")
	assert.True(t, errors.Is(err, ErrMockList))
	// the stale collection is still shown
	assert.Len(t, c.Todos(), 2)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, OpList, rec.all()[0].Op)
}

func TestLastCompletedRefreshWins(t *testing.T) {
	// Refreshes are not serialized: an older result landing last replaces a
	// newer one.
	ms := seeded()
	c := New(ms)

	stale := []model.Todo{{ID: "stale"}}
	fresh := []model.Todo{{ID: "fresh"}}

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	ms.ListFunc = func(ctx context.Context) ([]model.Todo, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return stale, nil
		}
		return fresh, nil
	}

	first := make(chan error, 1)
	go func() { first <- c.Refresh(context.Background()) }()
	<-started

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, "fresh", c.Todos()[0].ID)

	close(release)
	require.NoError(t, <-first)
	assert.Equal(t, "stale", c.Todos()[0].ID)
}

func TestFullNoticeChannelLogsDrop(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	notices := make(ChanNotifier, 1)
	ms := seeded()
	ms.ListFunc = func(ctx context.Context) ([]model.Todo, error) { return nil, ErrMockList }
	c := New(ms, WithNotifier(notices), WithLogger(zap.New(core)))

	require.Error(t, c.Refresh(context.Background()))
	assert.Zero(t, logs.FilterMessage("notice dropped").Len())

	require.Error(t, c.Refresh(context.Background()))
	dropped := logs.FilterMessage("notice dropped").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, OpList, dropped[0].ContextMap()["op"])
	require.Len(t, notices, 1)
}
