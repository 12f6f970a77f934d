package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/tada-cloud/internal/config"
	"github.com/idilsaglam/tada-cloud/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the record store HTTP service over the local store",
		Long: `serve exposes the local json or sqlite store over the HTTP API the remote
backend speaks. Set server.token (or TADA_SERVER_TOKEN) to require a bearer
token.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Store.Backend == config.BackendRemote {
				return fmt.Errorf("serve needs a local store backend (json or sqlite), not %q", a.cfg.Store.Backend)
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			st, closeFn, err := openStore(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer closeFn()

			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := server.New(st,
				server.WithToken(a.cfg.Server.Token),
				server.WithLogger(a.log.Named("server")),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Serve(gctx, addr)
			})
			g.Go(func() error {
				<-gctx.Done()
				a.log.Info("stopping record store", zap.String("addr", addr))
				return nil
			})
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s store on http://%s/api\n", a.cfg.Store.Backend, addr)
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}
