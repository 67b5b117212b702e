package model

import (
	"time"

	"github.com/google/uuid"
)

// ActionType is the closed set of action kinds a board timeline can
// carry. Every switch over it must be exhaustive; adding a kind without
// updating the dispatch sites is caught by tests.
type ActionType string

const (
	ActionAppointmentScheduling ActionType = "appointment_scheduling"
	ActionPaymentRequest        ActionType = "payment_request"
	ActionDocumentDownload      ActionType = "document_download"
	ActionChecklist             ActionType = "checklist"
	ActionMilestoneUpdate       ActionType = "milestone_update"
	ActionQuestion              ActionType = "question"
	ActionApproval              ActionType = "approval"
	ActionAddress               ActionType = "address"
	ActionTextBlock             ActionType = "text_block"
	ActionFileUpload            ActionType = "file_upload"
)

// ActionTypes lists every known kind, in a fixed order.
var ActionTypes = []ActionType{
	ActionAppointmentScheduling,
	ActionPaymentRequest,
	ActionDocumentDownload,
	ActionChecklist,
	ActionMilestoneUpdate,
	ActionQuestion,
	ActionApproval,
	ActionAddress,
	ActionTextBlock,
	ActionFileUpload,
}

// ActionStatus is the generic progress status shared by all action kinds.
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusFailed     ActionStatus = "failed"
	ActionStatusCancelled  ActionStatus = "cancelled"
)

// ActionPriority orders how urgently the customer should look at an action.
type ActionPriority string

const (
	PriorityLow    ActionPriority = "low"
	PriorityMedium ActionPriority = "medium"
	PriorityHigh   ActionPriority = "high"
	PriorityUrgent ActionPriority = "urgent"
)

// ConfirmationStatus is the specialized status dimension unique to
// appointment_scheduling actions, distinct from the generic ActionStatus.
type ConfirmationStatus string

const (
	ConfirmationPending     ConfirmationStatus = "pending"
	ConfirmationConfirmed   ConfirmationStatus = "confirmed"
	ConfirmationRejected    ConfirmationStatus = "rejected"
	ConfirmationCancelled   ConfirmationStatus = "cancelled"
	ConfirmationRescheduled ConfirmationStatus = "rescheduled"
)

// ConfirmationTransitions is the explicit transition table for the
// appointment confirmation lifecycle. All four outcomes are externally
// driven; rescheduled is terminal for the action it belongs to, a new
// appointment_scheduling action represents the new slot.
var ConfirmationTransitions = map[ConfirmationStatus][]ConfirmationStatus{
	ConfirmationPending: {
		ConfirmationConfirmed,
		ConfirmationRejected,
		ConfirmationRescheduled,
		ConfirmationCancelled,
	},
	ConfirmationConfirmed:   {},
	ConfirmationRejected:    {},
	ConfirmationCancelled:   {},
	ConfirmationRescheduled: {},
}

// CanTransition reports whether the confirmation lifecycle allows
// moving from one status to another.
func CanTransition(from, to ConfirmationStatus) bool {
	for _, next := range ConfirmationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidConfirmation reports whether s is one of the five known
// confirmation labels.
func IsValidConfirmation(s ConfirmationStatus) bool {
	switch s {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationRejected,
		ConfirmationCancelled, ConfirmationRescheduled:
		return true
	}
	return false
}

// Action is one polymorphic unit on a board's timeline. Details carries
// the kind-specific payload and its concrete type always matches
// ActionType.
type Action struct {
	ID                     uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID                uuid.UUID    `gorm:"type:uuid;not null;index"`
	ActionType             ActionType   `gorm:"not null"`
	Status                 ActionStatus `gorm:"not null;default:'pending'"`
	Priority               ActionPriority `gorm:"not null;default:'medium'"`
	Title                  string       `gorm:"not null"`
	CustomerActionRequired bool         `gorm:"not null;default:false"`
	DueDate                *time.Time
	Details                DetailsColumn `gorm:"type:jsonb"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}

// Confirmation returns the confirmation status for appointment
// scheduling actions, and false for every other kind.
func (a *Action) Confirmation() (ConfirmationStatus, bool) {
	d, ok := a.Details.Details.(*AppointmentSchedulingDetails)
	if !ok {
		return "", false
	}
	return d.ConfirmationStatus, true
}
