package repository

// Repositories groups the repositories handed to the service layer.
type Repositories struct {
	Grid          *GridRepository
	Package       *PackageRepository
	PackageInGrid *PackageInGridRepository
}

func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Grid:          NewGridRepository(db),
		Package:       NewPackageRepository(db),
		PackageInGrid: NewPackageInGridRepository(db),
	}
}
