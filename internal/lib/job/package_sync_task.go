package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/catalog/internal/model"
	"github.com/hibiken/asynq"
)

const (
	TaskPackageSync = "package:sync"

	packageSyncQueue = "low"
)

type PackageSyncPayload struct {
	PackageID int64  `json:"package_id"`
	Name      string `json:"name"`
}

// NewPackageSyncTask builds the sync task for pkg. It is never retried.
func NewPackageSyncTask(pkg model.Package, timeout time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(PackageSyncPayload{
		PackageID: pkg.ID,
		Name:      pkg.Name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPackageSync,
		payload,
		asynq.MaxRetry(0),
		asynq.Queue(packageSyncQueue),
		asynq.Timeout(timeout),
	), nil
}
