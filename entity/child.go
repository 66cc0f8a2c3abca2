package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Child struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SubmissionID uuid.UUID `json:"submission_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Position     int       `json:"position" gorm:"not null"`

	Photos     []Photo     `json:"photos,omitempty" gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE"`
	Submission *Submission `json:"submission,omitempty" gorm:"foreignKey:SubmissionID"`
}

func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
