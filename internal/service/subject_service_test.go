package service

import (
	"context"
	"path/filepath"
	"testing"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/ingestion"
	"notes-repository-be/internal/model"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/repository/unitofwork"
	"notes-repository-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "service.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return unitofwork.NewRepositoryFactory(db)
}

func TestSubjectCreateAndList(t *testing.T) {
	ctx := context.Background()
	publisher := &capturePublisher{}
	svc := NewSubjectService(newTestFactory(t), publisher, logger.NewNopLogger())
	userId := uuid.New()

	_, err := svc.Create(ctx, userId, &dto.CreateSubjectRequest{Name: " Zoologia ", Description: "animales"})
	require.NoError(t, err)
	created, err := svc.Create(ctx, userId, &dto.CreateSubjectRequest{Name: "Algebra"})
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, userId, *created.CreatedBy)

	// duplicate names are allowed
	_, err = svc.Create(ctx, userId, &dto.CreateSubjectRequest{Name: "Algebra"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Algebra", list[0].Name)
	assert.Equal(t, "Algebra", list[1].Name)
	assert.Equal(t, "Zoologia", list[2].Name)

	assert.Equal(t, []string{dto.CatalogKindSubject, dto.CatalogKindSubject, dto.CatalogKindSubject}, publisher.kinds())
}

func TestSubjectCreateRejectsBlankName(t *testing.T) {
	svc := NewSubjectService(newTestFactory(t), &capturePublisher{}, logger.NewNopLogger())

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSubjectRequest{Name: "   "})
	assert.ErrorIs(t, err, ingestion.ErrEmptySubjectName)
}
