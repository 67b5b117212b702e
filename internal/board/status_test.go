package board_test

import (
	"testing"

	"serviceboard/internal/board"
	"serviceboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Idempotent(t *testing.T) {
	// Arrange: every kind crossed with every generic status
	statuses := []model.ActionStatus{
		model.ActionStatusPending,
		model.ActionStatusInProgress,
		model.ActionStatusCompleted,
		model.ActionStatusFailed,
		model.ActionStatusCancelled,
	}

	for _, kind := range model.ActionTypes {
		for _, status := range statuses {
			// Act
			first := board.Classify(kind, status, model.ConfirmationPending)
			second := board.Classify(kind, status, model.ConfirmationPending)

			// Assert: identical inputs always yield identical output
			assert.Equal(t, first, second, "kind=%s status=%s", kind, status)
			assert.NotEmpty(t, first.ColorClass)
			assert.NotEmpty(t, first.Icon)
		}
	}
}

func TestClassify_AppointmentUsesConfirmationStatus(t *testing.T) {
	// Arrange: a rejected appointment whose generic status still says pending
	got := board.Classify(model.ActionAppointmentScheduling,
		model.ActionStatusPending, model.ConfirmationRejected)

	// Assert: classification reflects "rejected", never "pending"
	assert.Equal(t, "text-red-600", got.ColorClass)
	assert.Equal(t, "calendar-x", got.Icon)

	pending := board.Classify(model.ActionAppointmentScheduling,
		model.ActionStatusPending, model.ConfirmationPending)
	assert.NotEqual(t, got, pending)
}

func TestClassify_GenericKindsIgnoreConfirmation(t *testing.T) {
	// Arrange & Act: a payment request carries no confirmation dimension
	a := board.Classify(model.ActionPaymentRequest, model.ActionStatusCompleted, model.ConfirmationRejected)
	b := board.Classify(model.ActionPaymentRequest, model.ActionStatusCompleted, model.ConfirmationConfirmed)

	// Assert
	assert.Equal(t, a, b)
	assert.Equal(t, "text-green-600", a.ColorClass)
}

func TestClassify_EveryConfirmationLabelRenders(t *testing.T) {
	// StatusEngine renders whichever of the five labels is supplied,
	// without assuming a transition graph.
	labels := []model.ConfirmationStatus{
		model.ConfirmationPending,
		model.ConfirmationConfirmed,
		model.ConfirmationRejected,
		model.ConfirmationCancelled,
		model.ConfirmationRescheduled,
	}
	seen := make(map[board.Classification]bool)
	for _, label := range labels {
		got := board.Classify(model.ActionAppointmentScheduling, model.ActionStatusPending, label)
		assert.NotEmpty(t, got.ColorClass)
		assert.NotEmpty(t, got.Icon)
		assert.False(t, seen[got], "label %s collides with another label's classification", label)
		seen[got] = true
	}
}

func TestClassifyAction_PullsConfirmationFromDetails(t *testing.T) {
	// Arrange
	action := &model.Action{
		ActionType: model.ActionAppointmentScheduling,
		Status:     model.ActionStatusPending,
		Details: model.DetailsColumn{Details: &model.AppointmentSchedulingDetails{
			ConfirmationStatus: model.ConfirmationConfirmed,
		}},
	}

	// Act
	got := board.ClassifyAction(action)

	// Assert
	assert.Equal(t, "text-green-600", got.ColorClass)
	assert.Equal(t, "calendar-check", got.Icon)
}

func TestConfirmationTransitions(t *testing.T) {
	// pending fans out to all four outcomes
	for _, to := range []model.ConfirmationStatus{
		model.ConfirmationConfirmed,
		model.ConfirmationRejected,
		model.ConfirmationRescheduled,
		model.ConfirmationCancelled,
	} {
		assert.True(t, model.CanTransition(model.ConfirmationPending, to))
	}

	// the outcomes are terminal; rescheduled does not loop back to pending
	assert.False(t, model.CanTransition(model.ConfirmationRescheduled, model.ConfirmationPending))
	assert.False(t, model.CanTransition(model.ConfirmationConfirmed, model.ConfirmationRejected))
	assert.False(t, model.CanTransition(model.ConfirmationRejected, model.ConfirmationConfirmed))
}
