package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/catalog/internal/lib/hex"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/repository"
	"github.com/hibiken/asynq"
)

// PackageSyncStore loads packages and stores synced metadata.
type PackageSyncStore interface {
	GetByID(ctx context.Context, id int64) (model.Package, error)
	UpdateSyncedFields(ctx context.Context, id int64, f model.PackageSyncFields) (model.Package, error)
}

// PackageFetcher fetches registry metadata for a package name.
type PackageFetcher interface {
	FetchPackage(ctx context.Context, name string) (model.PackageSyncFields, error)
}

// InitHandlers wires the dependencies of the task handlers. It must be called
// before Start or Run.
func (j *JobService) InitHandlers(packages PackageSyncStore, fetcher PackageFetcher) {
	j.packages = packages
	j.fetcher = fetcher
}

func (j *JobService) handlePackageSyncTask(ctx context.Context, t *asynq.Task) error {
	var p PackageSyncPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal package sync payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("task", TaskPackageSync).
		Int64("package_id", p.PackageID).
		Str("package", p.Name).
		Logger()

	log.Info().Msg("Processing package sync task")

	pkg, err := j.packages.GetByID(ctx, p.PackageID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Msg("Package was deleted before it could be synced")
		return fmt.Errorf("package %d: %w", p.PackageID, asynq.SkipRetry)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to load package for sync")
		return err
	}

	fields, err := j.fetcher.FetchPackage(ctx, pkg.Name)
	if errors.Is(err, hex.ErrPackageNotFound) {
		log.Warn().Msg("Package does not exist on hex")
		return fmt.Errorf("package %s: %w", pkg.Name, asynq.SkipRetry)
	}
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to fetch package from hex")
		return err
	}

	if _, err := j.packages.UpdateSyncedFields(ctx, pkg.ID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Msg("Package was deleted during sync")
			return fmt.Errorf("package %d: %w", p.PackageID, asynq.SkipRetry)
		}
		log.Error().Err(err).Msg("Failed to store synced package fields")
		return err
	}

	log.Info().Msg("Successfully synced package")

	return nil
}
