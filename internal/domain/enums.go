package domain

// ApprovalStatus is the denormalized projection of a workflow instance's
// position: pending until a final stage is reached, then its outcome.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// StageOutcome marks a final workflow stage as a success or failure terminal.
type StageOutcome string

const (
	StageOutcomeNone     StageOutcome = ""
	StageOutcomeApproved StageOutcome = "approved"
	StageOutcomeRejected StageOutcome = "rejected"
)

func (o StageOutcome) String() string { return string(o) }

// ApprovalStatus maps a terminal outcome to the request status it implies.
func (o StageOutcome) ApprovalStatus() ApprovalStatus {
	switch o {
	case StageOutcomeApproved:
		return ApprovalStatusApproved
	case StageOutcomeRejected:
		return ApprovalStatusRejected
	}
	return ApprovalStatusPending
}

// RevisionStatus is the lifecycle state of a document revision.
type RevisionStatus string

const (
	RevisionStatusDraft      RevisionStatus = "draft"
	RevisionStatusReview     RevisionStatus = "review"
	RevisionStatusApproved   RevisionStatus = "approved"
	RevisionStatusSuperseded RevisionStatus = "superseded"
)

func (s RevisionStatus) String() string { return string(s) }

func (s RevisionStatus) IsValid() bool {
	switch s {
	case RevisionStatusDraft, RevisionStatusReview, RevisionStatusApproved, RevisionStatusSuperseded:
		return true
	}
	return false
}

// TransmittalStatus is the lifecycle state of a transmittal.
type TransmittalStatus string

const (
	TransmittalStatusDraft        TransmittalStatus = "draft"
	TransmittalStatusSent         TransmittalStatus = "sent"
	TransmittalStatusReceived     TransmittalStatus = "received"
	TransmittalStatusAcknowledged TransmittalStatus = "acknowledged"
	TransmittalStatusRejected     TransmittalStatus = "rejected"
)

func (s TransmittalStatus) String() string { return string(s) }

func (s TransmittalStatus) IsValid() bool {
	switch s {
	case TransmittalStatusDraft, TransmittalStatusSent, TransmittalStatusReceived,
		TransmittalStatusAcknowledged, TransmittalStatusRejected:
		return true
	}
	return false
}

// IsOpen reports whether the recipient still owes a response.
func (s TransmittalStatus) IsOpen() bool {
	return s == TransmittalStatusSent || s == TransmittalStatusReceived
}

// TransmittalType classifies what is being dispatched.
type TransmittalType string

const (
	TransmittalTypeDrawing  TransmittalType = "drawing"
	TransmittalTypeDocument TransmittalType = "document"
	TransmittalTypeMaterial TransmittalType = "material"
	TransmittalTypeSample   TransmittalType = "sample"
	TransmittalTypeOther    TransmittalType = "other"
)

func (t TransmittalType) String() string { return string(t) }

func (t TransmittalType) IsValid() bool {
	switch t {
	case TransmittalTypeDrawing, TransmittalTypeDocument, TransmittalTypeMaterial,
		TransmittalTypeSample, TransmittalTypeOther:
		return true
	}
	return false
}

// TransmittalAction is what the recipient is asked to do with a line item.
type TransmittalAction string

const (
	TransmittalActionForApproval     TransmittalAction = "for_approval"
	TransmittalActionForReview       TransmittalAction = "for_review"
	TransmittalActionForInformation  TransmittalAction = "for_information"
	TransmittalActionForConstruction TransmittalAction = "for_construction"
)

func (a TransmittalAction) String() string { return string(a) }

func (a TransmittalAction) IsValid() bool {
	switch a {
	case TransmittalActionForApproval, TransmittalActionForReview,
		TransmittalActionForInformation, TransmittalActionForConstruction:
		return true
	}
	return false
}

// DocumentFormat is the medium a transmitted document is supplied in.
type DocumentFormat string

const (
	DocumentFormatElectronic DocumentFormat = "electronic"
	DocumentFormatHardCopy   DocumentFormat = "hard_copy"
	DocumentFormatBoth       DocumentFormat = "both"
)

func (f DocumentFormat) String() string { return string(f) }

func (f DocumentFormat) IsValid() bool {
	switch f {
	case DocumentFormatElectronic, DocumentFormatHardCopy, DocumentFormatBoth:
		return true
	}
	return false
}

// EntityType identifies the kind of entity an audit entry refers to.
type EntityType string

const (
	EntityTypeApprovalRequest   EntityType = "approval_request"
	EntityTypeWorkflowInstance  EntityType = "workflow_instance"
	EntityTypeDocumentRevision  EntityType = "document_revision"
	EntityTypeSerialNumber      EntityType = "serial_number"
	EntityTypeSerialReservation EntityType = "serial_reservation"
	EntityTypeTransmittal       EntityType = "transmittal"
	EntityTypeUser              EntityType = "user"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeApprovalRequest, EntityTypeWorkflowInstance, EntityTypeDocumentRevision,
		EntityTypeSerialNumber, EntityTypeSerialReservation, EntityTypeTransmittal, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction names the kind of change recorded in the audit log.
type AuditAction string

const (
	AuditActionApprovalRequested  AuditAction = "approval.requested"
	AuditActionApprovalTransition AuditAction = "approval.transition"
	AuditActionApprovalDenied     AuditAction = "approval.denied"
	AuditActionSerialIssued       AuditAction = "serial.issued"
	AuditActionSerialReserved     AuditAction = "serial.reserved"
	AuditActionSerialConsumed     AuditAction = "serial.consumed"
	AuditActionRevisionCreated    AuditAction = "revision.created"
	AuditActionRevisionSubmitted  AuditAction = "revision.submitted"
	AuditActionRevisionApproved   AuditAction = "revision.approved"
	AuditActionTransmittalCreated AuditAction = "transmittal.created"
	AuditActionTransmittalStatus  AuditAction = "transmittal.status_changed"
	AuditActionUserRoleChanged    AuditAction = "user.role_changed"
)

func (a AuditAction) String() string { return string(a) }
