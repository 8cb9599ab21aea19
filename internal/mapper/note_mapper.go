package mapper

import (
	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:            n.Id,
		SubjectId:     n.SubjectId,
		UserId:        n.UserId,
		Title:         n.Title,
		Description:   n.Description,
		ImageURL:      n.ImageURL,
		ExtractedText: n.ExtractedText,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:            n.Id,
		SubjectId:     n.SubjectId,
		UserId:        n.UserId,
		Title:         n.Title,
		Description:   n.Description,
		ImageURL:      n.ImageURL,
		ExtractedText: n.ExtractedText,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

// ToListing flattens a note with its preloaded subject and uploader. Missing
// associations leave the display names empty.
func (m *NoteMapper) ToListing(n *model.Note) *entity.NoteListing {
	if n == nil {
		return nil
	}

	listing := &entity.NoteListing{Note: *m.ToEntity(n)}
	if n.Subject != nil {
		listing.SubjectName = n.Subject.Name
	}
	if n.Uploader != nil {
		listing.UploaderName = n.Uploader.FullName
	}
	return listing
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToListings(notes []*model.Note) []*entity.NoteListing {
	listings := make([]*entity.NoteListing, len(notes))
	for i, n := range notes {
		listings[i] = m.ToListing(n)
	}
	return listings
}
