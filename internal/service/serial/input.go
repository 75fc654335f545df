package serial

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// IssueInput holds the parameters for issuing a serial number.
type IssueInput struct {
	Category    string
	ProjectCode *string
}

// Validate checks all fields and collects all errors.
func (i IssueInput) Validate() error {
	var errs []domain.FieldError

	if !codeRe.MatchString(strings.ToUpper(strings.TrimSpace(i.Category))) {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be alphanumeric and start with a letter"})
	} else if strings.EqualFold(strings.TrimSpace(i.Category), TransmittalCategory) {
		errs = append(errs, domain.FieldError{Field: "category", Message: "reserved for transmittals"})
	}
	errs = append(errs, validateProject(i.ProjectCode)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReserveInput holds the parameters for reserving a serial number.
// A nil HolderID reserves on behalf of the calling actor.
type ReserveInput struct {
	Category string
	HolderID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ReserveInput) Validate() error {
	return IssueInput{Category: i.Category}.Validate()
}

func validateProject(code *string) []domain.FieldError {
	if code == nil {
		return nil
	}
	c := strings.ToUpper(strings.TrimSpace(*code))
	if c == "" {
		return nil
	}
	if !codeRe.MatchString(c) || len(c) > 20 {
		return []domain.FieldError{{Field: "project_code", Message: "must be alphanumeric, start with a letter, max 20 characters"}}
	}
	return nil
}

func normalizeProject(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.ToUpper(strings.TrimSpace(*code))
	if c == "" {
		return nil
	}
	return &c
}
