package approval

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

// CreateRequestInput holds the parameters for opening an approval request.
type CreateRequestInput struct {
	EntityType string
	EntityID   string
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i CreateRequestInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.EntityType) == "" {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "required"})
	}
	entityID := strings.TrimSpace(i.EntityID)
	if entityID == "" {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "required"})
	}
	if len(entityID) > 200 {
		errs = append(errs, domain.FieldError{Field: "entity_id", Message: "max 200 characters"})
	}
	if i.Comment != nil && len(strings.TrimSpace(*i.Comment)) > 2000 {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ProcessInput holds the parameters for acting on an approval request.
type ProcessInput struct {
	RequestID uuid.UUID
	Action    string
	Comment   *string
}

// Validate checks all fields and collects all errors.
func (i ProcessInput) Validate() error {
	var errs []domain.FieldError

	if i.RequestID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "request_id", Message: "required"})
	}
	if strings.TrimSpace(i.Action) == "" {
		errs = append(errs, domain.FieldError{Field: "action", Message: "required"})
	}
	if i.Comment != nil && len(strings.TrimSpace(*i.Comment)) > 2000 {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds paging parameters for inbox and history queries.
type ListInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	if i.Limit < 0 {
		return domain.NewValidationError("limit", "must be non-negative")
	}
	if i.Limit > MaxLimit {
		return domain.NewValidationError("limit", "max 200")
	}
	return nil
}

func (i ListInput) limit() int {
	if i.Limit == 0 {
		return DefaultLimit
	}
	return i.Limit
}
