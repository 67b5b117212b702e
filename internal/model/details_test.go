package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"serviceboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecodeDetails_EveryKindHasAPayload(t *testing.T) {
	// Arrange & Act: decoding an empty payload must work for every kind
	for _, kind := range model.ActionTypes {
		details, err := model.DecodeDetails(kind, nil)

		// Assert
		assert.NoError(t, err, "kind %s", kind)
		assert.NotNil(t, details, "kind %s", kind)
		assert.Equal(t, kind, details.Kind(), "kind %s", kind)
	}
}

func TestDecodeDetails_UnknownKind(t *testing.T) {
	// Act
	details, err := model.DecodeDetails("carrier_pigeon", []byte(`{}`))

	// Assert
	assert.ErrorIs(t, err, model.ErrUnknownActionType)
	assert.Nil(t, details)
}

func TestDecodeDetails_MalformedPayload(t *testing.T) {
	// Act
	details, err := model.DecodeDetails(model.ActionChecklist, []byte(`{"items":`))

	// Assert
	assert.Error(t, err)
	assert.Nil(t, details)
}

func TestDetailsColumn_ValueScanRoundTrip(t *testing.T) {
	// Arrange
	appointmentID := uuid.New()
	col := model.DetailsColumn{Details: &model.AppointmentSchedulingDetails{
		AppointmentID:      appointmentID,
		ConfirmationStatus: model.ConfirmationPending,
		Datetime:           time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Location:           "12 Harbor St",
	}}

	// Act
	value, err := col.Value()
	assert.NoError(t, err)

	var scanned model.DetailsColumn
	assert.NoError(t, scanned.Scan(value))

	// Assert: the concrete type survives a trip through the column
	details, ok := scanned.Details.(*model.AppointmentSchedulingDetails)
	assert.True(t, ok)
	assert.Equal(t, appointmentID, details.AppointmentID)
	assert.Equal(t, model.ConfirmationPending, details.ConfirmationStatus)
	assert.Equal(t, "12 Harbor St", details.Location)
}

func TestDetailsColumn_ValueCarriesDiscriminant(t *testing.T) {
	// Arrange
	col := model.DetailsColumn{Details: &model.TextBlockDetails{Body: "Work starts Monday"}}

	// Act
	value, err := col.Value()

	// Assert: the stored envelope names the kind alongside the payload
	assert.NoError(t, err)

	var envelope map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(value.([]byte), &envelope))
	assert.JSONEq(t, `"text_block"`, string(envelope["kind"]))
	assert.JSONEq(t, `{"body":"Work starts Monday"}`, string(envelope["data"]))
}

func TestDetailsColumn_NilDetails(t *testing.T) {
	// Act
	value, err := model.DetailsColumn{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)

	var scanned model.DetailsColumn
	assert.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned.Details)
}

func TestDetailsColumn_MarshalJSONEmitsPayloadOnly(t *testing.T) {
	// Arrange
	col := model.DetailsColumn{Details: &model.PaymentRequestDetails{
		AmountCents: 125000,
		Currency:    "USD",
		InvoiceRef:  "INV-042",
	}}

	// Act
	data, err := json.Marshal(col)

	// Assert: responses see the bare payload, not the storage envelope
	assert.NoError(t, err)
	assert.JSONEq(t, `{"amount_cents":125000,"currency":"USD","invoice_ref":"INV-042"}`, string(data))
}

func TestAction_Confirmation(t *testing.T) {
	// Arrange
	appointment := &model.Action{
		ActionType: model.ActionAppointmentScheduling,
		Details: model.DetailsColumn{Details: &model.AppointmentSchedulingDetails{
			ConfirmationStatus: model.ConfirmationConfirmed,
		}},
	}
	question := &model.Action{
		ActionType: model.ActionQuestion,
		Details:    model.DetailsColumn{Details: &model.QuestionDetails{Question: "Gate code?"}},
	}

	// Act & Assert: only appointment actions carry a confirmation status
	status, ok := appointment.Confirmation()
	assert.True(t, ok)
	assert.Equal(t, model.ConfirmationConfirmed, status)

	_, ok = question.Confirmation()
	assert.False(t, ok)
}
