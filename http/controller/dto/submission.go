package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obrunogonzaga/formatura-2025/entity"
	"github.com/obrunogonzaga/formatura-2025/repository"
)

type PhotoInputDTO struct {
	FileName   string `json:"fileName" binding:"required"`
	FileType   string `json:"fileType" binding:"required"`
	FileSize   *int64 `json:"fileSize,omitempty" binding:"omitempty,gte=0"`
	PhotoIndex *int   `json:"photoIndex,omitempty" binding:"omitempty,gte=0"`
}

type ChildInputDTO struct {
	Name       string          `json:"name" binding:"required"`
	ChildIndex *int            `json:"childIndex,omitempty" binding:"omitempty,gte=0"`
	Photos     []PhotoInputDTO `json:"photos" binding:"required,len=3,dive"`
}

type CreateSubmissionRequestDTO struct {
	GuardianName string          `json:"guardianName" binding:"required"`
	Turma        string          `json:"turma" binding:"required"`
	Children     []ChildInputDTO `json:"children" binding:"required,min=1,dive"`
}

// Validate applies the rules the binding tags cannot express: minimum
// lengths are counted after trimming and the turma label must belong to the
// closed set.
func (r *CreateSubmissionRequestDTO) Validate() error {
	if len(strings.TrimSpace(r.GuardianName)) < 2 {
		return fmt.Errorf("guardianName must have at least 2 characters")
	}
	if !entity.Turma(strings.TrimSpace(r.Turma)).Valid() {
		return fmt.Errorf("turma %q is not an accepted group label", r.Turma)
	}
	for i, child := range r.Children {
		if len(strings.TrimSpace(child.Name)) < 2 {
			return fmt.Errorf("children[%d].name must have at least 2 characters", i)
		}
		if len(child.Photos) != 3 {
			return fmt.Errorf("children[%d] must have exactly 3 photos, got %d", i, len(child.Photos))
		}
		for j, photo := range child.Photos {
			if photo.FileName == "" {
				return fmt.Errorf("children[%d].photos[%d].fileName is required", i, j)
			}
			if photo.FileType == "" {
				return fmt.Errorf("children[%d].photos[%d].fileType is required", i, j)
			}
		}
	}
	return nil
}

// ToInput converts the bound request into the writer's input shape.
func (r *CreateSubmissionRequestDTO) ToInput() repository.SubmissionInput {
	input := repository.SubmissionInput{
		GuardianName: r.GuardianName,
		Turma:        r.Turma,
		Children:     make([]repository.ChildInput, 0, len(r.Children)),
	}
	for _, child := range r.Children {
		childInput := repository.ChildInput{
			Name:       child.Name,
			ChildIndex: child.ChildIndex,
			Photos:     make([]repository.PhotoInput, 0, len(child.Photos)),
		}
		for _, photo := range child.Photos {
			childInput.Photos = append(childInput.Photos, repository.PhotoInput{
				FileName:   photo.FileName,
				FileType:   photo.FileType,
				FileSize:   photo.FileSize,
				PhotoIndex: photo.PhotoIndex,
			})
		}
		input.Children = append(input.Children, childInput)
	}
	return input
}

type UploadTargetDTO struct {
	URL        string `json:"url"`
	ChildIndex int    `json:"childIndex"`
	PhotoIndex int    `json:"photoIndex"`
}

type CreateSubmissionResponseDTO struct {
	SubmissionID  uuid.UUID         `json:"submissionId"`
	UploadTargets []UploadTargetDTO `json:"uploadTargets"`
}

type PhotoDTO struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	MimeType  string    `json:"mimeType"`
	ObjectKey string    `json:"objectKey"`
	Order     int       `json:"order"`
	URL       string    `json:"url"`
}

type ChildDTO struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Photos []PhotoDTO `json:"photos"`
}

type SubmissionDTO struct {
	ID           uuid.UUID  `json:"id"`
	GuardianName string     `json:"guardianName"`
	CreatedAt    time.Time  `json:"createdAt"`
	Children     []ChildDTO `json:"children"`
}

type ListSubmissionsResponseDTO struct {
	Submissions []SubmissionDTO `json:"submissions"`
}
