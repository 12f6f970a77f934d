package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/auth"
	"github.com/idilsaglam/tada-cloud/internal/config"
	"github.com/idilsaglam/tada-cloud/internal/controller"
	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
	"github.com/idilsaglam/tada-cloud/internal/store/jsonstore"
	"github.com/idilsaglam/tada-cloud/internal/store/remote"
	"github.com/idilsaglam/tada-cloud/internal/store/sqlitestore"
	"github.com/idilsaglam/tada-cloud/internal/ui"
)

// openStore returns the configured backend and a func releasing it.
func openStore(cfg *config.Config, log *zap.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendJSON:
		path, err := cfg.StorePath(jsonstore.DefaultFileName)
		if err != nil {
			return nil, nil, err
		}
		log.Debug("using json store", zap.String("path", path))
		return jsonstore.New(path), noop, nil

	case config.BackendSQLite:
		path, err := cfg.StorePath(sqlitestore.DefaultFileName)
		if err != nil {
			return nil, nil, err
		}
		log.Debug("using sqlite store", zap.String("path", path))
		st, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil

	case config.BackendRemote:
		log.Debug("using remote store", zap.String("url", cfg.Remote.URL))
		c, err := remote.New(cfg.Remote.URL,
			remote.WithTimeout(cfg.Remote.Timeout),
			remote.WithToken(savedToken),
			remote.WithLogger(log.Named("remote")),
		)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func savedToken() (string, error) {
	ti, err := auth.GetToken()
	if err != nil || ti == nil {
		return "", err
	}
	return ti.Token, nil
}

// openController opens the store and returns a loaded controller that prints
// failures through ui.Fail.
func (a *app) openController(ctx context.Context) (*controller.Controller, func() error, error) {
	st, closeFn, err := openStore(a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	ctrl := controller.New(st,
		controller.WithLogger(a.log),
		controller.WithNotifier(controller.NotifierFunc(func(n controller.Notice) {
			ui.Fail(n.String())
			if remote.IsUnauthorized(n.Err) {
				ui.Fail("the record store rejected the token; run `tada auth login`")
			}
		})),
	)
	if err := ctrl.Refresh(ctx); err != nil {
		_ = closeFn()
		return nil, nil, errReported
	}
	return ctrl, closeFn, nil
}

// resolve finds the todo named by arg: a 1-based position in the `tada ls`
// order, or an id.
func resolve(todos []model.Todo, arg string) (model.Todo, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(todos) {
			return model.Todo{}, usagef("index out of range: have %d, got %d", len(todos), n)
		}
		return todos[n-1], nil
	}
	for _, td := range todos {
		if td.ID == arg {
			return td, nil
		}
	}
	return model.Todo{}, fmt.Errorf("%s: %w", arg, store.ErrNotFound)
}

// mutationErr keeps notices from being printed twice.
func mutationErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrInvalidStatus) {
		return usagef("%v", err)
	}
	return errReported
}
