// Package job runs background work on asynq, backed by Redis.
//
// The only task is package:sync, enqueued without waiting after a package is
// created and handled by the worker, which refreshes the package from hex.pm.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/catalog/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// enqueuer is the part of *asynq.Client the trigger uses.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type JobService struct {
	Client *asynq.Client

	enqueuer enqueuer
	server   *asynq.Server
	cfg      *config.SyncConfig

	packages PackageSyncStore
	fetcher  PackageFetcher

	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1, // package sync
			},
			Logger:   asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:   client,
		enqueuer: client,
		server:   server,
		cfg:      cfg.Sync,
		logger:   logger,
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPackageSync, j.handlePackageSyncTask)
	return mux
}

// Start runs the worker in the background alongside the HTTP server.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(j.mux())
}

// Run runs the worker in the foreground until SIGTERM or SIGINT.
func (j *JobService) Run() error {
	j.logger.Info().Msg("Running background job server")

	return j.server.Run(j.mux())
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if j.Client != nil {
		j.Client.Close()
	}
}

// asynqLogger routes asynq's own logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
