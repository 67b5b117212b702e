package board

import "serviceboard/internal/model"

// Classification is the visual/semantic classification of an action for
// rendering: a CSS color class and an icon name.
type Classification struct {
	ColorClass string
	Icon       string
}

// Classify maps an action's kind and status to its classification. For
// appointment_scheduling actions only the confirmation status matters
// and the generic status is ignored; every other kind classifies on the
// generic status. Pure and deterministic: identical inputs always yield
// identical output.
func Classify(t model.ActionType, status model.ActionStatus, confirmation model.ConfirmationStatus) Classification {
	if t == model.ActionAppointmentScheduling {
		return Classification{
			ColorClass: confirmationColor(confirmation),
			Icon:       confirmationIcon(confirmation),
		}
	}
	return Classification{
		ColorClass: statusColor(status),
		Icon:       typeIcon(t),
	}
}

// ClassifyAction classifies a concrete action, pulling the confirmation
// status out of its details payload when the kind calls for it.
func ClassifyAction(a *model.Action) Classification {
	confirmation, _ := a.Confirmation()
	return Classify(a.ActionType, a.Status, confirmation)
}

func statusColor(s model.ActionStatus) string {
	switch s {
	case model.ActionStatusPending:
		return "text-amber-600"
	case model.ActionStatusInProgress:
		return "text-blue-600"
	case model.ActionStatusCompleted:
		return "text-green-600"
	case model.ActionStatusFailed:
		return "text-red-600"
	case model.ActionStatusCancelled:
		return "text-gray-400"
	default:
		return "text-gray-600"
	}
}

func confirmationColor(s model.ConfirmationStatus) string {
	switch s {
	case model.ConfirmationPending:
		return "text-amber-600"
	case model.ConfirmationConfirmed:
		return "text-green-600"
	case model.ConfirmationRejected:
		return "text-red-600"
	case model.ConfirmationCancelled:
		return "text-gray-400"
	case model.ConfirmationRescheduled:
		return "text-purple-600"
	default:
		return "text-gray-600"
	}
}

func confirmationIcon(s model.ConfirmationStatus) string {
	switch s {
	case model.ConfirmationConfirmed:
		return "calendar-check"
	case model.ConfirmationRejected:
		return "calendar-x"
	case model.ConfirmationCancelled:
		return "calendar-off"
	case model.ConfirmationRescheduled:
		return "calendar-sync"
	default:
		return "calendar-clock"
	}
}

// typeIcon is an exhaustive match over the closed kind set; the
// appointment branch is unreachable from Classify but kept so the
// switch covers every kind.
func typeIcon(t model.ActionType) string {
	switch t {
	case model.ActionAppointmentScheduling:
		return "calendar-clock"
	case model.ActionPaymentRequest:
		return "credit-card"
	case model.ActionDocumentDownload:
		return "file-down"
	case model.ActionChecklist:
		return "list-checks"
	case model.ActionMilestoneUpdate:
		return "flag"
	case model.ActionQuestion:
		return "message-circle-question"
	case model.ActionApproval:
		return "stamp"
	case model.ActionAddress:
		return "map-pin"
	case model.ActionTextBlock:
		return "text"
	case model.ActionFileUpload:
		return "upload"
	default:
		return "circle"
	}
}
