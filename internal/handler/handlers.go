package handler

import (
	"github.com/deppfellow/catalog/internal/server"
	"github.com/deppfellow/catalog/internal/service"
)

type Handlers struct {
	Health        *HealthHandler
	Grid          *GridHandler
	Package       *PackageHandler
	PackageInGrid *PackageInGridHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Grid:          NewGridHandler(s, services.Grid),
		Package:       NewPackageHandler(s, services.Package),
		PackageInGrid: NewPackageInGridHandler(s, services.PackageInGrid),
	}
}
