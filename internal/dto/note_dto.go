package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNoteRequest is the multipart upload form. Either SubjectId or
// NewSubjectName picks the subject; the image bytes are read by the controller.
type CreateNoteRequest struct {
	SubjectId             string `form:"subject_id"`
	NewSubjectName        string `form:"new_subject_name"`
	NewSubjectDescription string `form:"new_subject_description"`
	Title                 string `form:"title"`
	Description           string `form:"description"`

	FileName string `form:"-"`
	Image    []byte `form:"-"`
}

type NoteResponse struct {
	Id            uuid.UUID `json:"id"`
	SubjectId     uuid.UUID `json:"subject_id"`
	UserId        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	ExtractedText string    `json:"extracted_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type NoteListingResponse struct {
	NoteResponse
	SubjectName  string `json:"subject_name"`
	UploaderName string `json:"uploader_name"`
}

type PreviewResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	DataURL     string `json:"data_url"`
}
