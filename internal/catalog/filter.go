package catalog

import (
	"strings"

	"notes-repository-be/internal/entity"
)

// AllSubjects disables the subject criterion.
const AllSubjects = "all"

// Filter narrows notes by subject id and a case-insensitive substring query
// over title, description, extracted text and subject name. The input slice is
// never modified and the relative order is kept. Nil entries are always
// dropped, even when neither criterion is active.
func Filter(notes []*entity.NoteListing, subjectFilter, query string) []*entity.NoteListing {
	out := make([]*entity.NoteListing, 0, len(notes))

	// A query made only of whitespace is ignored, but a non-blank query is
	// matched as typed (surrounding spaces included).
	search := ""
	if strings.TrimSpace(query) != "" {
		search = strings.ToLower(query)
	}

	for _, n := range notes {
		if n == nil {
			continue
		}
		if subjectFilter != AllSubjects && n.SubjectId.String() != subjectFilter {
			continue
		}
		if search != "" && !matches(n, search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func matches(n *entity.NoteListing, search string) bool {
	for _, field := range []string{n.Title, n.Description, n.ExtractedText, n.SubjectName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
