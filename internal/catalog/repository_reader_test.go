package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"notes-repository-be/internal/model"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/repository/unitofwork"
	"notes-repository-be/pkg/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepositoryReaderOrdersAndJoins(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "catalog.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	uploader := model.Profile{Id: uuid.New(), Email: "ana@example.com", FullName: "Ana", PasswordHash: "x"}
	require.NoError(t, db.Create(&uploader).Error)

	algebra := model.Subject{Id: uuid.New(), Name: "Algebra"}
	zoology := model.Subject{Id: uuid.New(), Name: "Zoologia"}
	require.NoError(t, db.Create(&zoology).Error)
	require.NoError(t, db.Create(&algebra).Error)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	older := model.Note{Id: uuid.New(), SubjectId: algebra.Id, UserId: uploader.Id, Title: "old", ImageURL: "u1", CreatedAt: base}
	newer := model.Note{Id: uuid.New(), SubjectId: zoology.Id, UserId: uploader.Id, Title: "new", ImageURL: "u2", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, db.Omit("Subject", "Uploader").Create(&older).Error)
	require.NoError(t, db.Omit("Subject", "Uploader").Create(&newer).Error)

	loader := NewLoader(NewRepositoryReader(unitofwork.NewRepositoryFactory(db)), logger.NewNopLogger())
	got := loader.Load(context.Background())

	require.False(t, got.Partial())
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "new", got.Notes[0].Title)
	assert.Equal(t, "Zoologia", got.Notes[0].SubjectName)
	assert.Equal(t, "Ana", got.Notes[0].UploaderName)
	assert.Equal(t, "old", got.Notes[1].Title)

	require.Len(t, got.Subjects, 2)
	assert.Equal(t, "Algebra", got.Subjects[0].Name)
	assert.Equal(t, "Zoologia", got.Subjects[1].Name)

	one, err := loader.Note(context.Background(), older.Id)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", one.SubjectName)
}

func TestRepositoryReaderPartialFailureOnPostgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))
	mock.ExpectQuery(`SELECT \* FROM "subjects"`).
		WillReturnError(errors.New(`relation "subjects" does not exist`))

	got := NewLoader(NewRepositoryReader(unitofwork.NewRepositoryFactory(db)), logger.NewNopLogger()).Load(context.Background())

	assert.Equal(t, []string{HalfSubjects}, got.Failures)
	assert.Empty(t, got.Notes)
	assert.Empty(t, got.Subjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}
