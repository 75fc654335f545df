package revision

import (
	"strings"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// CreateInput holds the parameters for creating a revision.
type CreateInput struct {
	DocumentID  string
	ArtifactRef string
	Size        int64
	Changes     *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	docID := strings.TrimSpace(i.DocumentID)
	if docID == "" {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if len(docID) > 200 {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "max 200 characters"})
	}
	if strings.TrimSpace(i.ArtifactRef) == "" {
		errs = append(errs, domain.FieldError{Field: "artifact_ref", Message: "required"})
	}
	if i.Size < 0 {
		errs = append(errs, domain.FieldError{Field: "size", Message: "must be non-negative"})
	}
	if i.Changes != nil && len(strings.TrimSpace(*i.Changes)) > 5000 {
		errs = append(errs, domain.FieldError{Field: "changes", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CompareInput names two revisions of one document by letter.
type CompareInput struct {
	DocumentID string
	A          string
	B          string
}

// Validate checks all fields and collects all errors.
func (i CompareInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.DocumentID) == "" {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if !letterRe.MatchString(i.A) || i.A == "" {
		errs = append(errs, domain.FieldError{Field: "a", Message: "must be a revision letter"})
	}
	if !letterRe.MatchString(i.B) || i.B == "" {
		errs = append(errs, domain.FieldError{Field: "b", Message: "must be a revision letter"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
