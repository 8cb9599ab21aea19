package unitofwork

import (
	"context"

	"notes-repository-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProfileRepository() contract.ProfileRepository
	SubjectRepository() contract.SubjectRepository
	NoteRepository() contract.NoteRepository
}
