package entity

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	Id          uuid.UUID
	Name        string
	Description string
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
}
