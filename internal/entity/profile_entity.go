package entity

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
