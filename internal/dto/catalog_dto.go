package dto

type CatalogRequest struct {
	Subject string `query:"subject"`
	Query   string `query:"q"`
}

// CatalogResponse carries whatever half of the catalog loaded. Partial is set
// when a half failed; Failures names which ("notes", "subjects").
type CatalogResponse struct {
	Notes    []*NoteListingResponse `json:"notes"`
	Subjects []*SubjectResponse     `json:"subjects"`
	Partial  bool                   `json:"partial"`
	Failures []string               `json:"failures"`
}
