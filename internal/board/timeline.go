package board

import (
	"fmt"
	"sort"

	"serviceboard/internal/model"
)

// FeedEntryKind discriminates the two entry shapes a feed can hold.
type FeedEntryKind string

const (
	EntryAction         FeedEntryKind = "action"
	EntryServiceRequest FeedEntryKind = "service_request"
)

// FeedEntry is one rendered row of the board timeline: either an action
// (with its classification) or the founding service request.
type FeedEntry struct {
	Kind           FeedEntryKind
	Action         *model.Action
	Classification Classification
	ServiceRequest *model.ServiceRequest
}

// BuildFeed produces the ordered timeline: actions sorted by CreatedAt
// descending, then the service request entry always last regardless of
// its own timestamp. The sort is stable so actions with equal
// timestamps keep their fetch order. BuildFeed never mutates its
// inputs.
func BuildFeed(actions []model.Action, sr *model.ServiceRequest) []FeedEntry {
	ordered := make([]*model.Action, len(actions))
	for i := range actions {
		ordered[i] = &actions[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	feed := make([]FeedEntry, 0, len(ordered)+1)
	for _, a := range ordered {
		feed = append(feed, FeedEntry{
			Kind:           EntryAction,
			Action:         a,
			Classification: ClassifyAction(a),
		})
	}
	if sr != nil {
		feed = append(feed, FeedEntry{
			Kind:           EntryServiceRequest,
			ServiceRequest: sr,
		})
	}
	return feed
}

// Panel describes the kind-specific detail panel of one action card.
type Panel struct {
	Kind    model.ActionType
	Heading string
	Lines   []string
}

// DetailPanel renders the detail panel for an action by exhaustive
// match over the sealed details type. Each variant consumes only its
// own payload; a payload whose concrete type disagrees with the
// action's kind is a data error.
func DetailPanel(a *model.Action) (Panel, error) {
	p := Panel{Kind: a.ActionType}
	switch d := a.Details.Details.(type) {
	case *model.AppointmentSchedulingDetails:
		p.Heading = "Appointment"
		p.Lines = append(p.Lines, fmt.Sprintf("Scheduled for %s", d.Datetime.Format("Mon, 2 Jan 2006 15:04")))
		if d.Location != "" {
			p.Lines = append(p.Lines, fmt.Sprintf("Location: %s", d.Location))
		}
		if d.PlatformName != "" {
			p.Lines = append(p.Lines, fmt.Sprintf("Platform: %s", d.PlatformName))
		}
		p.Lines = append(p.Lines, fmt.Sprintf("Confirmation: %s", d.ConfirmationStatus))
	case *model.PaymentRequestDetails:
		p.Heading = "Payment request"
		p.Lines = append(p.Lines, fmt.Sprintf("Amount: %d.%02d %s", d.AmountCents/100, d.AmountCents%100, d.Currency))
		if d.InvoiceRef != "" {
			p.Lines = append(p.Lines, fmt.Sprintf("Invoice: %s", d.InvoiceRef))
		}
		if d.PaidAt != nil {
			p.Lines = append(p.Lines, fmt.Sprintf("Paid at %s", d.PaidAt.Format("2 Jan 2006")))
		}
	case *model.DocumentDownloadDetails:
		p.Heading = "Document"
		p.Lines = append(p.Lines, d.FileName)
		if d.SizeBytes > 0 {
			p.Lines = append(p.Lines, fmt.Sprintf("%d bytes", d.SizeBytes))
		}
	case *model.ChecklistDetails:
		p.Heading = "Checklist"
		done := 0
		for _, item := range d.Items {
			if item.Done {
				done++
			}
		}
		p.Lines = append(p.Lines, fmt.Sprintf("%d of %d complete", done, len(d.Items)))
		for _, item := range d.Items {
			mark := "[ ]"
			if item.Done {
				mark = "[x]"
			}
			p.Lines = append(p.Lines, fmt.Sprintf("%s %s", mark, item.Label))
		}
	case *model.MilestoneUpdateDetails:
		p.Heading = "Milestone"
		p.Lines = append(p.Lines, d.Milestone)
		if d.Note != "" {
			p.Lines = append(p.Lines, d.Note)
		}
	case *model.QuestionDetails:
		p.Heading = "Question"
		p.Lines = append(p.Lines, d.Question)
		if d.Answer != nil {
			p.Lines = append(p.Lines, fmt.Sprintf("Answer: %s", *d.Answer))
		}
	case *model.ApprovalDetails:
		p.Heading = "Approval"
		p.Lines = append(p.Lines, d.Subject)
		if d.Decision != nil {
			p.Lines = append(p.Lines, fmt.Sprintf("Decision: %s", *d.Decision))
		}
	case *model.AddressDetails:
		p.Heading = "Address"
		p.Lines = append(p.Lines, d.Line1)
		if d.Line2 != "" {
			p.Lines = append(p.Lines, d.Line2)
		}
		p.Lines = append(p.Lines, fmt.Sprintf("%s %s", d.City, d.PostalCode))
		p.Lines = append(p.Lines, d.Country)
	case *model.TextBlockDetails:
		p.Heading = "Note"
		p.Lines = append(p.Lines, d.Body)
	case *model.FileUploadDetails:
		p.Heading = "File upload"
		p.Lines = append(p.Lines, d.Prompt)
		if d.FileName != nil {
			p.Lines = append(p.Lines, fmt.Sprintf("Uploaded: %s", *d.FileName))
		}
	case nil:
		return Panel{}, fmt.Errorf("action %s has no details payload", a.ID)
	default:
		return Panel{}, fmt.Errorf("%w: %T", model.ErrUnknownActionType, d)
	}
	return p, nil
}
