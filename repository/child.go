package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/entity"
)

type ChildRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

func (r *ChildRepository) Create(ctx context.Context, child *entity.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *ChildRepository) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) ([]entity.Child, error) {
	var children []entity.Child
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("position ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}
