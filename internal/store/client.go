package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"serviceboard/internal/model"
)

// Client is the HTTP half of the access gate: it talks to the board
// service and maps responses into the error taxonomy. A locked board
// surfaces as ErrAuthRequired, never as action data.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// BoardMeta is the ungated board metadata.
type BoardMeta struct {
	BoardRef    string `json:"board_ref"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	IsGated     bool   `json:"is_gated"`
}

type wireAction struct {
	ID                     string          `json:"action_id"`
	ActionType             string          `json:"action_type"`
	ActionStatus           string          `json:"action_status"`
	ActionPriority         string          `json:"action_priority"`
	Title                  string          `json:"title"`
	CustomerActionRequired bool            `json:"is_customer_action_required"`
	DueDate                *time.Time      `json:"due_date"`
	ActionDetails          json.RawMessage `json:"action_details"`
	CreatedAt              time.Time       `json:"created_at"`
}

type wireServiceRequest struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Summary       string    `json:"summary"`
	Details       string    `json:"details"`
	RequestedAt   time.Time `json:"requested_at"`
}

type wireActionList struct {
	Actions        []wireAction        `json:"actions"`
	ServiceRequest *wireServiceRequest `json:"service_request"`
}

type wireAppointment struct {
	ID                  string    `json:"id"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	AppointmentType     string    `json:"appointment_type"`
	Location            string    `json:"location"`
	PlatformName        string    `json:"platform_name"`
	PlatformLink        string    `json:"platform_link"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// GetBoard fetches ungated board metadata by reference.
func (c *Client) GetBoard(ctx context.Context, ref string) (*BoardMeta, error) {
	resp, err := c.get(ctx, "/boards/"+ref, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var meta BoardMeta
		if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
			return nil, &NetworkError{Err: err}
		}
		return &meta, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &NetworkError{Status: resp.StatusCode}
	}
}

// GetActions fetches the board's ordered action list through the gate.
// A 401 carrying the requires_password flag is the locked signal; no
// action data accompanies it.
func (c *Client) GetActions(ctx context.Context, ref, token string) ([]model.Action, *model.ServiceRequest, error) {
	resp, err := c.get(ctx, "/boards/"+ref+"/actions", token)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var list wireActionList
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			return nil, nil, &NetworkError{Err: err}
		}
		actions := make([]model.Action, 0, len(list.Actions))
		for _, w := range list.Actions {
			a, err := decodeAction(w)
			if err != nil {
				return nil, nil, &NetworkError{Err: err}
			}
			actions = append(actions, a)
		}
		var sr *model.ServiceRequest
		if list.ServiceRequest != nil {
			sr = &model.ServiceRequest{
				CustomerName:  list.ServiceRequest.CustomerName,
				CustomerEmail: list.ServiceRequest.CustomerEmail,
				Summary:       list.ServiceRequest.Summary,
				Details:       list.ServiceRequest.Details,
				RequestedAt:   list.ServiceRequest.RequestedAt,
			}
		}
		return actions, sr, nil
	case http.StatusUnauthorized:
		var body struct {
			RequiresPassword bool `json:"requires_password"`
		}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &body); err == nil && body.RequiresPassword {
			return nil, nil, ErrAuthRequired
		}
		return nil, nil, &NetworkError{Status: resp.StatusCode}
	case http.StatusNotFound:
		return nil, nil, ErrNotFound
	default:
		return nil, nil, &NetworkError{Status: resp.StatusCode}
	}
}

// GetAppointments fetches the board's appointment set.
func (c *Client) GetAppointments(ctx context.Context, ref string) ([]model.Appointment, error) {
	resp, err := c.get(ctx, "/boards/"+ref+"/appointments", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var wires []wireAppointment
		if err := json.NewDecoder(resp.Body).Decode(&wires); err != nil {
			return nil, &NetworkError{Err: err}
		}
		appts := make([]model.Appointment, 0, len(wires))
		for _, w := range wires {
			id, err := uuid.Parse(w.ID)
			if err != nil {
				return nil, &NetworkError{Err: fmt.Errorf("bad appointment id %q: %w", w.ID, err)}
			}
			appts = append(appts, model.Appointment{
				ID:              id,
				Datetime:        w.AppointmentDatetime,
				AppointmentType: model.AppointmentType(w.AppointmentType),
				Location:        w.Location,
				PlatformName:    w.PlatformName,
				PlatformLink:    w.PlatformLink,
				Status:          model.ConfirmationStatus(w.Status),
				Notes:           w.Notes,
			})
		}
		return appts, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &NetworkError{Status: resp.StatusCode}
	}
}

// VerifyPassword exchanges the shared password for a board token. A
// 4xx answer is a validation failure the caller re-prompts on.
func (c *Client) VerifyPassword(ctx context.Context, ref, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/boards/"+ref+"/verify-password", bytes.NewReader(payload))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", &NetworkError{Err: err}
		}
		return body.Token, nil
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", ErrInvalidPassword
	default:
		return "", &NetworkError{Status: resp.StatusCode}
	}
}

func decodeAction(w wireAction) (model.Action, error) {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return model.Action{}, fmt.Errorf("bad action id %q: %w", w.ID, err)
	}
	details, err := model.DecodeDetails(model.ActionType(w.ActionType), w.ActionDetails)
	if err != nil {
		return model.Action{}, err
	}
	return model.Action{
		ID:                     id,
		ActionType:             model.ActionType(w.ActionType),
		Status:                 model.ActionStatus(w.ActionStatus),
		Priority:               model.ActionPriority(w.ActionPriority),
		Title:                  w.Title,
		CustomerActionRequired: w.CustomerActionRequired,
		DueDate:                w.DueDate,
		Details:                model.DetailsColumn{Details: details},
		CreatedAt:              w.CreatedAt,
	}, nil
}
