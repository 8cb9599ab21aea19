package catalog

import (
	"context"
	"errors"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrNoteNotFound = errors.New("note not found")

const (
	HalfNotes    = "notes"
	HalfSubjects = "subjects"
)

// Reader is the read side the catalog is assembled from.
type Reader interface {
	ListNotes(ctx context.Context) ([]*entity.NoteListing, error)
	ListSubjects(ctx context.Context) ([]*entity.Subject, error)
	FindNote(ctx context.Context, id uuid.UUID) (*entity.NoteListing, error)
}

type Catalog struct {
	Notes    []*entity.NoteListing
	Subjects []*entity.Subject
	// Failures names the halves that could not be read.
	Failures []string
}

func (c *Catalog) Partial() bool {
	return len(c.Failures) > 0
}

type Loader struct {
	reader Reader
	logger logger.ILogger
}

func NewLoader(reader Reader, log logger.ILogger) *Loader {
	return &Loader{reader: reader, logger: log}
}

// Load reads notes and subjects concurrently and waits for both. A failed half
// comes back empty and is listed in Failures; the other half is still returned.
func (l *Loader) Load(ctx context.Context) *Catalog {
	var (
		notes       []*entity.NoteListing
		subjects    []*entity.Subject
		notesErr    error
		subjectsErr error
	)

	// Errors are captured per half rather than returned so one failure never
	// cancels the sibling read.
	var g errgroup.Group
	g.Go(func() error {
		notes, notesErr = l.reader.ListNotes(ctx)
		return nil
	})
	g.Go(func() error {
		subjects, subjectsErr = l.reader.ListSubjects(ctx)
		return nil
	})
	_ = g.Wait()

	out := &Catalog{
		Notes:    []*entity.NoteListing{},
		Subjects: []*entity.Subject{},
		Failures: []string{},
	}

	if notesErr != nil {
		out.Failures = append(out.Failures, HalfNotes)
		l.logger.Error("CATALOG", "Failed to load notes", map[string]interface{}{"error": notesErr.Error()})
	} else if notes != nil {
		out.Notes = notes
	}

	if subjectsErr != nil {
		out.Failures = append(out.Failures, HalfSubjects)
		l.logger.Error("CATALOG", "Failed to load subjects", map[string]interface{}{"error": subjectsErr.Error()})
	} else if subjects != nil {
		out.Subjects = subjects
	}

	return out
}

// Note returns a single listing for the detail view.
func (l *Loader) Note(ctx context.Context, id uuid.UUID) (*entity.NoteListing, error) {
	listing, err := l.reader.FindNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNoteNotFound
	}
	return listing, nil
}
