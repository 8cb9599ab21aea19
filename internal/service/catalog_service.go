package service

import (
	"context"

	"notes-repository-be/internal/catalog"
	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/entity"

	"github.com/google/uuid"
)

type ICatalogService interface {
	Browse(ctx context.Context, req *dto.CatalogRequest) *dto.CatalogResponse
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteListingResponse, error)
}

type catalogService struct {
	loader *catalog.Loader
}

func NewCatalogService(loader *catalog.Loader) ICatalogService {
	return &catalogService{loader: loader}
}

// Browse loads both halves and narrows the notes. A failed half is reported,
// not raised.
func (s *catalogService) Browse(ctx context.Context, req *dto.CatalogRequest) *dto.CatalogResponse {
	subjectFilter := req.Subject
	if subjectFilter == "" {
		subjectFilter = catalog.AllSubjects
	}

	loaded := s.loader.Load(ctx)
	notes := catalog.Filter(loaded.Notes, subjectFilter, req.Query)

	failures := loaded.Failures
	if failures == nil {
		failures = []string{}
	}

	return &dto.CatalogResponse{
		Notes:    toNoteListingResponses(notes),
		Subjects: toSubjectResponses(loaded.Subjects),
		Partial:  loaded.Partial(),
		Failures: failures,
	}
}

func (s *catalogService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteListingResponse, error) {
	listing, err := s.loader.Note(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNoteListingResponse(listing), nil
}

func toNoteResponse(note *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:            note.Id,
		SubjectId:     note.SubjectId,
		UserId:        note.UserId,
		Title:         note.Title,
		Description:   note.Description,
		ImageURL:      note.ImageURL,
		ExtractedText: note.ExtractedText,
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
	}
}

func toNoteListingResponse(listing *entity.NoteListing) *dto.NoteListingResponse {
	return &dto.NoteListingResponse{
		NoteResponse: toNoteResponse(&listing.Note),
		SubjectName:  listing.SubjectName,
		UploaderName: listing.UploaderName,
	}
}

func toNoteListingResponses(listings []*entity.NoteListing) []*dto.NoteListingResponse {
	res := make([]*dto.NoteListingResponse, 0, len(listings))
	for _, listing := range listings {
		res = append(res, toNoteListingResponse(listing))
	}
	return res
}
