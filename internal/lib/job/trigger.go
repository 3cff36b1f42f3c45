package job

import (
	"context"

	"github.com/deppfellow/catalog/internal/config"
	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/model"
)

// TriggerPackageSync enqueues a sync for pkg from a new goroutine and returns
// at once. Nothing is reported back to the caller: enqueue failures are only
// logged, and the caller's cancellation does not reach the goroutine.
func (j *JobService) TriggerPackageSync(ctx context.Context, pkg model.Package) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx, j.logger).With().
		Str("task", TaskPackageSync).
		Int64("package_id", pkg.ID).
		Str("package", pkg.Name).
		Logger()

	timeout := config.DefaultSyncTimeout
	if j.cfg != nil {
		timeout = j.cfg.Timeout
	}

	go func() {
		task, err := NewPackageSyncTask(pkg, timeout)
		if err != nil {
			log.Error().Err(err).Msg("failed to build package sync task")
			return
		}

		info, err := j.enqueuer.EnqueueContext(ctx, task)
		if err != nil {
			log.Error().Err(err).Msg("failed to enqueue package sync")
			return
		}

		log.Info().Str("task_id", info.ID).Msg("enqueued package sync")
	}()
}
