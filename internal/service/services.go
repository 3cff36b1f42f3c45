package service

import (
	"github.com/deppfellow/catalog/internal/lib/job"
	"github.com/deppfellow/catalog/internal/repository"
	"github.com/deppfellow/catalog/internal/server"
)

type Services struct {
	Grid          *GridService
	Package       *PackageService
	PackageInGrid *PackageInGridService
	Job           *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Grid:          NewGridService(repos.Grid, s.Logger),
		Package:       NewPackageService(repos.Package, s.Job, s.Logger),
		PackageInGrid: NewPackageInGridService(repos.PackageInGrid, s.Logger),
		Job:           s.Job,
	}, nil
}
