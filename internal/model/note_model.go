package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubjectId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	ImageURL      string    `gorm:"column:image_url;type:text;not null"`
	ExtractedText string    `gorm:"type:text;not null;default:''"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	// Only loaded through Preload for listings.
	Subject  *Subject `gorm:"foreignKey:SubjectId;constraint:OnDelete:RESTRICT"`
	Uploader *Profile `gorm:"foreignKey:UserId;constraint:OnDelete:RESTRICT"`
}

func (Note) TableName() string {
	return "notes"
}
