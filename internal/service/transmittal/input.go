package transmittal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

const maxDocuments = 200

// CreateInput holds the parameters for creating a transmittal. A zero Sender
// sends on behalf of the calling actor.
type CreateInput struct {
	ProjectID   uuid.UUID
	ProjectCode *string
	Subject     string
	Type        domain.TransmittalType
	Sender      domain.Party
	Recipient   domain.Party
	DueAt       *time.Time
	Documents   []domain.TransmittalDocument
	Notes       *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "required"})
	}
	subject := strings.TrimSpace(i.Subject)
	if subject == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}
	if len(subject) > 500 {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "max 500 characters"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown transmittal type"})
	}
	if i.Recipient.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "recipient.id", Message: "required"})
	}
	if strings.TrimSpace(i.Recipient.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "recipient.name", Message: "required"})
	}
	if i.Sender.ID != uuid.Nil && i.Sender.ID == i.Recipient.ID {
		errs = append(errs, domain.FieldError{Field: "recipient.id", Message: "must differ from sender"})
	}
	if i.Notes != nil && len(strings.TrimSpace(*i.Notes)) > 5000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 5000 characters"})
	}

	switch {
	case len(i.Documents) == 0:
		errs = append(errs, domain.FieldError{Field: "documents", Message: "at least one document required"})
	case len(i.Documents) > maxDocuments:
		errs = append(errs, domain.FieldError{Field: "documents", Message: fmt.Sprintf("max %d documents", maxDocuments)})
	}
	for n, d := range i.Documents {
		field := fmt.Sprintf("documents[%d]", n)
		if strings.TrimSpace(d.DocumentID) == "" {
			errs = append(errs, domain.FieldError{Field: field + ".document_id", Message: "required"})
		}
		if d.Copies < 1 {
			errs = append(errs, domain.FieldError{Field: field + ".copies", Message: "must be at least 1"})
		}
		if !d.Format.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".format", Message: "unknown format"})
		}
		if !d.Action.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".action", Message: "unknown action"})
		}
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
