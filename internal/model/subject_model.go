package model

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (Subject) TableName() string {
	return "subjects"
}
