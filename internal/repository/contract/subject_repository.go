package contract

import (
	"context"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/repository/specification"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subject, error)
}
