package ingestion

import (
	"context"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/repository/specification"
	"notes-repository-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// RepositoryStores backs SubjectStore and NoteStore with the relational store.
type RepositoryStores struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRepositoryStores(uowFactory unitofwork.RepositoryFactory) *RepositoryStores {
	return &RepositoryStores{uowFactory: uowFactory}
}

func (s *RepositoryStores) FindSubject(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubjectRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *RepositoryStores) CreateSubject(ctx context.Context, subject *entity.Subject) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubjectRepository().Create(ctx, subject)
}

func (s *RepositoryStores) CreateNote(ctx context.Context, note *entity.Note) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NoteRepository().Create(ctx, note)
}
