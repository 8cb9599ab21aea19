package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	CatalogKindNote    = "note"
	CatalogKindSubject = "subject"
)

// CatalogEventMessage travels on the in-process bus after a note or subject
// is created.
type CatalogEventMessage struct {
	Kind       string     `json:"kind"`
	Id         uuid.UUID  `json:"id"`
	SubjectId  *uuid.UUID `json:"subject_id,omitempty"`
	Title      string     `json:"title"`
	UserId     uuid.UUID  `json:"user_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}
