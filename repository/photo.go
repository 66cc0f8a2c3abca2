package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/entity"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoRepository) FindByChildID(ctx context.Context, childID uuid.UUID) ([]entity.Photo, error) {
	var photos []entity.Photo
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("photo_order ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepository) CountBySubmissionID(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Photo{}).
		Joins("JOIN children ON children.id = photos.child_id").
		Where("children.submission_id = ?", submissionID).
		Count(&count).Error
	return count, err
}
