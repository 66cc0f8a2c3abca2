package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/entity"
	"github.com/obrunogonzaga/formatura-2025/utils"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// ListRecent returns the newest submissions with their children and photos
// preloaded in creation order.
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]entity.Submission, error) {
	var submissions []entity.Submission
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Children.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photo_order ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// SubmissionInput is a validated submission payload, ready to be persisted.
type SubmissionInput struct {
	GuardianName string
	Turma        string
	Children     []ChildInput
}

type ChildInput struct {
	Name       string
	ChildIndex *int
	Photos     []PhotoInput
}

type PhotoInput struct {
	FileName   string
	FileType   string
	FileSize   *int64
	PhotoIndex *int
}

// CreatedPhoto describes one photo row created by CreateSubmissionTree. The
// (ChildIndex, PhotoIndex) pair lets the client match a presigned URL back to
// the file it still holds in memory, so it is carried explicitly instead of
// being implied by list position.
type CreatedPhoto struct {
	PhotoID     uuid.UUID
	ObjectKey   string
	ContentType string
	ChildIndex  int
	PhotoIndex  int
}

type SubmissionResult struct {
	SubmissionID  uuid.UUID
	CreatedPhotos []CreatedPhoto
}

// CreateSubmissionTree creates a submission with its children and photos in
// one transaction. Object keys are derived from the persisted (trimmed)
// values, not the raw input, so the stored key always reflects exactly what
// was written. If anything fails the whole tree rolls back; a child with
// fewer than three photos is never observable.
func (r *Repository) CreateSubmissionTree(ctx context.Context, input SubmissionInput) (*SubmissionResult, error) {
	result := &SubmissionResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTransaction(tx)

		submission := &entity.Submission{
			GuardianName: strings.TrimSpace(input.GuardianName),
			Turma:        strings.TrimSpace(input.Turma),
		}
		if err := txRepo.SubmissionRepo.Create(ctx, submission); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		for childIndex, childInput := range input.Children {
			child := &entity.Child{
				SubmissionID: submission.ID,
				Name:         strings.TrimSpace(childInput.Name),
				Position:     childIndex,
			}
			if err := txRepo.ChildRepo.Create(ctx, child); err != nil {
				return fmt.Errorf("failed to create child %d: %w", childIndex, err)
			}

			// An explicit childIndex from the client overrides the positional
			// one in the upload targets, so forms can reorder children
			// without renumbering.
			targetChildIndex := childIndex
			if childInput.ChildIndex != nil {
				targetChildIndex = *childInput.ChildIndex
			}

			for photoIndex, photoInput := range childInput.Photos {
				objectKey := utils.BuildObjectKey(
					submission.Turma,
					submission.GuardianName,
					child.Name,
					photoIndex,
					photoInput.FileName,
				)

				photo := &entity.Photo{
					ChildID:   child.ID,
					FileName:  photoInput.FileName,
					MimeType:  photoInput.FileType,
					ObjectKey: objectKey,
					Order:     photoIndex,
				}
				if err := txRepo.PhotoRepo.Create(ctx, photo); err != nil {
					return fmt.Errorf("failed to create photo %d of child %d: %w", photoIndex, childIndex, err)
				}

				result.CreatedPhotos = append(result.CreatedPhotos, CreatedPhoto{
					PhotoID:     photo.ID,
					ObjectKey:   objectKey,
					ContentType: photoInput.FileType,
					ChildIndex:  targetChildIndex,
					PhotoIndex:  photoIndex,
				})
			}
		}

		result.SubmissionID = submission.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
