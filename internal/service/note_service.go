package service

import (
	"context"
	"fmt"
	"strings"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/ingestion"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/tracer"
	"notes-repository-be/pkg/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Preview(ctx context.Context, fileName string, data []byte) (*dto.PreviewResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteListingResponse, error)
}

type noteService struct {
	subjects         ingestion.SubjectStore
	notes            ingestion.NoteStore
	objects          storage.ObjectStore
	extractor        ingestion.TextExtractor
	publisherService IPublisherService
	catalogService   ICatalogService
	logger           logger.ILogger
}

func NewNoteService(
	subjects ingestion.SubjectStore,
	notes ingestion.NoteStore,
	objects storage.ObjectStore,
	extractor ingestion.TextExtractor,
	publisherService IPublisherService,
	catalogService ICatalogService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		subjects:         subjects,
		notes:            notes,
		objects:          objects,
		extractor:        extractor,
		publisherService: publisherService,
		catalogService:   catalogService,
		logger:           log,
	}
}

// Create runs one ingestion pipeline for the request: pick the subject,
// select the image, then upload, extract and insert.
func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (_ *dto.NoteResponse, err error) {
	ctx, span := tracer.Start(ctx, "note.create", attribute.String("user.id", userId.String()))
	defer func() { tracer.End(span, err) }()

	p := ingestion.NewPipeline(ingestion.Deps{
		Subjects:  s.subjects,
		Notes:     s.notes,
		Objects:   s.objects,
		Extractor: s.extractor,
		Logger:    s.logger,
	})
	p.Observe(func(from, to ingestion.State) {
		s.logger.Debug("INGESTION", "State changed", map[string]interface{}{
			"user_id": userId.String(),
			"from":    string(from),
			"to":      string(to),
		})
	})

	if len(req.Image) > 0 {
		if _, err := p.SelectImage(req.FileName, req.Image); err != nil {
			return nil, err
		}
	}

	if err := s.chooseSubject(ctx, p, userId, req); err != nil {
		return nil, err
	}

	note, err := p.Submit(ctx, ingestion.Submission{
		UploaderID:  userId,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		s.logger.Error("INGESTION", "Upload failed", map[string]interface{}{
			"user_id": userId.String(),
			"state":   string(p.State()),
			"error":   err.Error(),
		})
		return nil, err
	}

	subjectId := note.SubjectId
	publishCatalogEvent(ctx, s.publisherService, s.logger, dto.CatalogEventMessage{
		Kind:       dto.CatalogKindNote,
		Id:         note.Id,
		SubjectId:  &subjectId,
		Title:      note.Title,
		UserId:     note.UserId,
		OccurredAt: note.CreatedAt,
	})

	res := toNoteResponse(note)
	return &res, nil
}

// chooseSubject selects an existing subject, or creates the new one. A new
// subject is only inserted once the rest of the form is complete, so a
// rejected upload leaves nothing behind.
func (s *noteService) chooseSubject(ctx context.Context, p *ingestion.Pipeline, userId uuid.UUID, req *dto.CreateNoteRequest) error {
	if raw := strings.TrimSpace(req.SubjectId); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %q", ingestion.ErrSubjectNotFound, raw)
		}
		_, err = p.UseSubject(ctx, id)
		return err
	}

	if strings.TrimSpace(req.NewSubjectName) == "" {
		return nil
	}
	if strings.TrimSpace(req.Title) == "" || len(req.Image) == 0 {
		return nil
	}

	subject, err := p.CreateSubject(ctx, req.NewSubjectName, req.NewSubjectDescription, userId)
	if err != nil {
		return err
	}
	publishSubjectCreated(ctx, s.publisherService, s.logger, subject)
	return nil
}

func (s *noteService) Preview(_ context.Context, fileName string, data []byte) (*dto.PreviewResponse, error) {
	preview, err := ingestion.BuildPreview(fileName, data)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{
		FileName:    preview.FileName,
		ContentType: preview.ContentType,
		SizeBytes:   preview.SizeBytes,
		Width:       preview.Width,
		Height:      preview.Height,
		DataURL:     preview.DataURL,
	}, nil
}

func (s *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteListingResponse, error) {
	return s.catalogService.Show(ctx, id)
}
