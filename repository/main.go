package repository

import (
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/infra"
)

type Repository struct {
	db *gorm.DB

	SubmissionRepo *SubmissionRepository
	ChildRepo      *ChildRepository
	PhotoRepo      *PhotoRepository
}

var repository *Repository

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		SubmissionRepo: NewSubmissionRepository(db),
		ChildRepo:      NewChildRepository(db),
		PhotoRepo:      NewPhotoRepository(db),
	}
}

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

// WithTransaction rebinds every sub-repository to the given transaction so
// that all creation calls share one atomic unit of work.
func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		db:             tx,
		SubmissionRepo: NewSubmissionRepository(tx),
		ChildRepo:      NewChildRepository(tx),
		PhotoRepo:      NewPhotoRepository(tx),
	}
}
