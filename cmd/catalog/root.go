package main

import (
	"github.com/deppfellow/catalog/internal/config"
	"github.com/deppfellow/catalog/internal/lib/hex"
	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/repository"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "catalog",
	Short:        "Grid and package catalog service",
	Long:         "catalog keeps grids of hex packages and syncs package metadata from hex.pm.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(workerCmd)
}

// app is what every command starts from: loaded config, loggers, the shared
// server and the repositories on its pool.
type app struct {
	cfg           *config.Config
	log           *zerolog.Logger
	loggerService *logger.LoggerService
	server        *server.Server
	repos         *repository.Repositories
}

func loadConfig() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

// newApp connects to storage and registers the package sync handler on the
// job service. The worker itself is left stopped.
func newApp() (*app, error) {
	cfg, log, loggerService, err := loadConfig()
	if err != nil {
		return nil, err
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, errors.Wrap(err, "failed to initialize server")
	}

	repos := repository.NewRepositories(srv.DB.Pool)
	srv.Job.InitHandlers(repos.Package, hex.NewClient(cfg.Sync, log))

	return &app{
		cfg:           cfg,
		log:           log,
		loggerService: loggerService,
		server:        srv,
		repos:         repos,
	}, nil
}
