package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada-cloud/internal/controller"
	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/server"
	"github.com/idilsaglam/tada-cloud/internal/store"
	"github.com/idilsaglam/tada-cloud/internal/store/jsonstore"
	"github.com/idilsaglam/tada-cloud/internal/store/storetest"
)

// newBackend starts the development record store over a fresh JSON file.
func newBackend(t *testing.T, opts ...server.Option) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := server.New(jsonstore.New(filepath.Join(t.TempDir(), "todos.json")), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		c, err := New(newBackend(t).URL + "/api")
		require.NoError(t, err)
		return c
	})
}

func TestBearerToken(t *testing.T) {
	ts := newBackend(t, server.WithToken("s3cret"))

	anon, err := New(ts.URL + "/api")
	require.NoError(t, err)
	_, err = anon.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "bearer token")

	authed, err := New(ts.URL+"/api/", WithToken(func() (string, error) { return "s3cret", nil }))
	require.NoError(t, err)
	items, err := authed.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTokenErrorStopsRequest(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer ts.Close()

	c, err := New(ts.URL, WithToken(func() (string, error) { return "", errors.New("keychain locked") }))
	require.NoError(t, err)
	_, err = c.List(context.Background())
	assert.ErrorContains(t, err, "keychain locked")
	assert.False(t, called)
}

func TestNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)
	_, err = c.List(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
	_, err = New("::not a url")
	assert.Error(t, err)
}

func TestTimeoutDoesNotTouchSuppliedClient(t *testing.T) {
	shared := &http.Client{}
	for name, opts := range map[string][]Option{
		"timeout first": {WithTimeout(3 * time.Second), WithHTTPClient(shared)},
		"client first":  {WithHTTPClient(shared), WithTimeout(3 * time.Second)},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := New("http://127.0.0.1:8420/api", opts...)
			require.NoError(t, err)
			assert.Equal(t, 3*time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
			assert.Zero(t, shared.Timeout)
		})
	}

	c, err := New("http://127.0.0.1:8420/api", WithHTTPClient(http.DefaultClient))
	require.NoError(t, err)
	assert.Same(t, http.DefaultClient, c.http)
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestCanceledContext(t *testing.T) {
	c, err := New(newBackend(t).URL + "/api")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// The whole loop: form -> controller -> remote client -> dev server -> JSON file.
func TestControllerOverHTTP(t *testing.T) {
	c, err := New(newBackend(t).URL + "/api")
	require.NoError(t, err)
	ctrl := controller.New(c)
	ctx := context.Background()
	require.NoError(t, ctrl.Refresh(ctx))

	f := controller.NewForm()
	f.Title, f.Content, f.Status, f.Category = "Buy milk", "2%", model.StatusPending, "errand"
	created, err := f.Submit(ctx, ctrl)
	require.NoError(t, err)
	require.True(t, created)

	todos := ctrl.Todos()
	require.Len(t, todos, 1)
	id := todos[0].ID
	assert.Equal(t, []string{"errand"}, todos[0].Category)

	require.NoError(t, ctrl.SetStatus(ctx, id, model.StatusCompleted))
	assert.Equal(t, model.StatusCompleted, ctrl.Todos()[0].Status)

	require.NoError(t, ctrl.Remove(ctx, id))
	assert.Empty(t, ctrl.Todos())

	err = ctrl.Remove(ctx, id)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
