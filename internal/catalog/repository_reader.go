package catalog

import (
	"context"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/repository/specification"
	"notes-repository-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type repositoryReader struct {
	uowFactory unitofwork.RepositoryFactory
}

// NewRepositoryReader reads the catalog from the relational store.
func NewRepositoryReader(uowFactory unitofwork.RepositoryFactory) Reader {
	return &repositoryReader{uowFactory: uowFactory}
}

func (r *repositoryReader) ListNotes(ctx context.Context) ([]*entity.NoteListing, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindAllListings(ctx, specification.OrderBy{Field: "notes.created_at", Desc: true})
}

func (r *repositoryReader) ListSubjects(ctx context.Context) ([]*entity.Subject, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return uow.SubjectRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
}

func (r *repositoryReader) FindNote(ctx context.Context, id uuid.UUID) (*entity.NoteListing, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().FindOneListing(ctx, specification.ByID{ID: id})
}
