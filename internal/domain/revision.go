package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentRevision is one edition of a controlled document.
type DocumentRevision struct {
	ID          uuid.UUID
	DocumentID  string
	Letter      string
	Version     int
	Status      RevisionStatus
	ArtifactRef string
	Size        int64
	CreatedBy   uuid.UUID
	ApprovedBy  *uuid.UUID
	ApprovedAt  *time.Time
	Changes     *string
	CreatedAt   time.Time
}

// RevisionComparison pairs two revisions of a document with the documented
// changes between them.
type RevisionComparison struct {
	Old           DocumentRevision
	New           DocumentRevision
	ChangeSummary []string
}

// RevisionStatusChange is a conditional status update: it applies only while
// the revision is in one of From.
type RevisionStatusChange struct {
	From       []RevisionStatus
	To         RevisionStatus
	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time
}
