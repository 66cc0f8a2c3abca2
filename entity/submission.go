package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Turma is the closed set of cohort labels accepted on a submission.
type Turma string

const (
	TurmaJIIA Turma = "JII A"
	TurmaJIIB Turma = "JII B"
)

func (t Turma) Valid() bool {
	return t == TurmaJIIA || t == TurmaJIIB
}

type Submission struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GuardianName string    `json:"guardian_name" gorm:"type:varchar(255);not null"`
	Turma        string    `json:"turma" gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;autoCreateTime;index"`

	Children []Child `json:"children,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
