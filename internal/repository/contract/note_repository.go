package contract

import (
	"context"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Listings preload the subject name and uploader full name.
	FindOneListing(ctx context.Context, specs ...specification.Specification) (*entity.NoteListing, error)
	FindAllListings(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteListing, error)
}
