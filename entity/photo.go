package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is one of the three image slots of a child. ObjectKey is derived
// once when the row is created and never recomputed afterwards; the
// presigned upload URL and the public read URL are both built from it.
type Photo struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChildID   uuid.UUID `json:"child_id" gorm:"type:uuid;not null;index"`
	FileName  string    `json:"file_name" gorm:"type:varchar(512);not null"`
	MimeType  string    `json:"mime_type" gorm:"type:varchar(255);not null"`
	ObjectKey string    `json:"object_key" gorm:"type:varchar(1024);not null"`
	Order     int       `json:"order" gorm:"column:photo_order;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	Child *Child `json:"child,omitempty" gorm:"foreignKey:ChildID"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
