package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/catalog/internal/database"
	"github.com/deppfellow/catalog/internal/handler"
	"github.com/deppfellow/catalog/internal/router"
	"github.com/deppfellow/catalog/internal/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server and workers.
const ShutdownTimeout = 30 * time.Second

var serveFlags = struct {
	Migrate bool
	Worker  bool
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.Migrate, "migrate", false, "apply pending migrations before serving")
	serveCmd.Flags().BoolVar(&serveFlags.Worker, "worker", true, "run the package sync worker in-process")
}

func serve(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	if serveFlags.Migrate {
		if err := database.Migrate(ctx, a.log, a.cfg); err != nil {
			return errors.Wrap(err, "failed to migrate database")
		}
	}

	services, err := service.NewServices(a.server, a.repos)
	if err != nil {
		return errors.Wrap(err, "could not create services")
	}

	r := router.NewRouter(a.server, handler.NewHandlers(a.server, services))
	a.server.SetupHTTPServer(r)

	if serveFlags.Worker {
		if err := a.server.Job.Start(); err != nil {
			return errors.Wrap(err, "failed to start job server")
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	a.log.Info().Msg("server exited properly")
	return nil
}
