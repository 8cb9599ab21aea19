package contract

import (
	"context"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/repository/specification"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
