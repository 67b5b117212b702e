package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActionDetails is the kind-specific payload of an Action. The set of
// implementations is sealed: one struct per ActionType, nothing else
// may satisfy the interface.
type ActionDetails interface {
	Kind() ActionType
	sealedDetails()
}

// ApprovalDecision is the outcome recorded on an approval action.
type ApprovalDecision string

const (
	DecisionApproved ApprovalDecision = "approved"
	DecisionDeclined ApprovalDecision = "declined"
)

type AppointmentSchedulingDetails struct {
	AppointmentID      uuid.UUID          `json:"appointment_id"`
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status"`
	Datetime           time.Time          `json:"datetime"`
	Location           string             `json:"location,omitempty"`
	PlatformName       string             `json:"platform_name,omitempty"`
	PlatformLink       string             `json:"platform_link,omitempty"`
}

type PaymentRequestDetails struct {
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	InvoiceRef  string     `json:"invoice_ref,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type DocumentDownloadDetails struct {
	FileName  string `json:"file_name"`
	FileURL   string `json:"file_url"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type ChecklistItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type ChecklistDetails struct {
	Items []ChecklistItem `json:"items"`
}

type MilestoneUpdateDetails struct {
	Milestone string `json:"milestone"`
	Note      string `json:"note,omitempty"`
}

type QuestionDetails struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer,omitempty"`
}

type ApprovalDetails struct {
	Subject  string            `json:"subject"`
	Decision *ApprovalDecision `json:"decision,omitempty"`
}

type AddressDetails struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
}

type TextBlockDetails struct {
	Body string `json:"body"`
}

type FileUploadDetails struct {
	Prompt   string  `json:"prompt"`
	FileName *string `json:"file_name,omitempty"`
	FileURL  *string `json:"file_url,omitempty"`
}

func (*AppointmentSchedulingDetails) Kind() ActionType { return ActionAppointmentScheduling }
func (*PaymentRequestDetails) Kind() ActionType        { return ActionPaymentRequest }
func (*DocumentDownloadDetails) Kind() ActionType      { return ActionDocumentDownload }
func (*ChecklistDetails) Kind() ActionType             { return ActionChecklist }
func (*MilestoneUpdateDetails) Kind() ActionType       { return ActionMilestoneUpdate }
func (*QuestionDetails) Kind() ActionType              { return ActionQuestion }
func (*ApprovalDetails) Kind() ActionType              { return ActionApproval }
func (*AddressDetails) Kind() ActionType               { return ActionAddress }
func (*TextBlockDetails) Kind() ActionType             { return ActionTextBlock }
func (*FileUploadDetails) Kind() ActionType            { return ActionFileUpload }

func (*AppointmentSchedulingDetails) sealedDetails() {}
func (*PaymentRequestDetails) sealedDetails()        {}
func (*DocumentDownloadDetails) sealedDetails()      {}
func (*ChecklistDetails) sealedDetails()             {}
func (*MilestoneUpdateDetails) sealedDetails()       {}
func (*QuestionDetails) sealedDetails()              {}
func (*ApprovalDetails) sealedDetails()              {}
func (*AddressDetails) sealedDetails()               {}
func (*TextBlockDetails) sealedDetails()             {}
func (*FileUploadDetails) sealedDetails()            {}

// ErrUnknownActionType is returned when a payload carries a
// discriminant outside the closed kind set.
var ErrUnknownActionType = errors.New("unknown action type")

// DecodeDetails unmarshals a kind-specific payload. The switch is
// exhaustive over the closed kind set; an unknown discriminant is an
// error, never a silently ignored payload.
func DecodeDetails(t ActionType, data []byte) (ActionDetails, error) {
	var d ActionDetails
	switch t {
	case ActionAppointmentScheduling:
		d = &AppointmentSchedulingDetails{}
	case ActionPaymentRequest:
		d = &PaymentRequestDetails{}
	case ActionDocumentDownload:
		d = &DocumentDownloadDetails{}
	case ActionChecklist:
		d = &ChecklistDetails{}
	case ActionMilestoneUpdate:
		d = &MilestoneUpdateDetails{}
	case ActionQuestion:
		d = &QuestionDetails{}
	case ActionApproval:
		d = &ApprovalDetails{}
	case ActionAddress:
		d = &AddressDetails{}
	case ActionTextBlock:
		d = &TextBlockDetails{}
	case ActionFileUpload:
		d = &FileUploadDetails{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, t)
	}
	if len(data) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", t, err)
	}
	return d, nil
}

// DetailsColumn stores an ActionDetails value in a single jsonb column.
// The payload is wrapped in an envelope carrying the discriminant so a
// row scan can restore the concrete type without consulting the
// action_type column.
type DetailsColumn struct {
	Details ActionDetails
}

type detailsEnvelope struct {
	Kind ActionType      `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Value implements driver.Valuer.
func (c DetailsColumn) Value() (driver.Value, error) {
	if c.Details == nil {
		return nil, nil
	}
	data, err := json.Marshal(c.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(detailsEnvelope{Kind: c.Details.Kind(), Data: data})
}

// Scan implements sql.Scanner.
func (c *DetailsColumn) Scan(src interface{}) error {
	if src == nil {
		c.Details = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported details column type %T", src)
	}
	var env detailsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	d, err := DecodeDetails(env.Kind, env.Data)
	if err != nil {
		return err
	}
	c.Details = d
	return nil
}

// MarshalJSON emits only the payload; the discriminant lives on the
// enclosing Action.
func (c DetailsColumn) MarshalJSON() ([]byte, error) {
	if c.Details == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Details)
}
