package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id            uuid.UUID
	SubjectId     uuid.UUID
	UserId        uuid.UUID
	Title         string
	Description   string
	ImageURL      string
	ExtractedText string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NoteListing is a note joined with the display names shown in the catalog.
type NoteListing struct {
	Note
	SubjectName  string
	UploaderName string
}
