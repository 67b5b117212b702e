package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"serviceboard/internal/middleware"
	"serviceboard/internal/model"
	"serviceboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActionRepository is the action persistence surface the handlers need.
type ActionRepository interface {
	Create(ctx context.Context, action *model.Action) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Action, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Action, error)
	Update(ctx context.Context, action *model.Action) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ActionStatus) error
}

// AppointmentStatusUpdater syncs a confirmation outcome onto the
// appointment row the action represents.
type AppointmentStatusUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ConfirmationStatus) error
}

type ActionHandler struct {
	actionRepo ActionRepository
	srRepo     ServiceRequestRepository
	apptRepo   AppointmentStatusUpdater
}

func NewActionHandler(actionRepo ActionRepository, srRepo ServiceRequestRepository, apptRepo AppointmentStatusUpdater) *ActionHandler {
	return &ActionHandler{
		actionRepo: actionRepo,
		srRepo:     srRepo,
		apptRepo:   apptRepo,
	}
}

type ActionResponse struct {
	ID                     string          `json:"action_id"`
	ActionType             string          `json:"action_type"`
	ActionStatus           string          `json:"action_status"`
	ActionPriority         string          `json:"action_priority"`
	Title                  string          `json:"title"`
	CustomerActionRequired bool            `json:"is_customer_action_required"`
	DueDate                *time.Time      `json:"due_date,omitempty"`
	ActionDetails          json.RawMessage `json:"action_details"`
	CreatedAt              time.Time       `json:"created_at"`
}

type ServiceRequestResponse struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Summary       string    `json:"summary"`
	Details       string    `json:"details,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
}

type ActionListResponse struct {
	Actions        []ActionResponse        `json:"actions"`
	ServiceRequest *ServiceRequestResponse `json:"service_request,omitempty"`
}

func actionResponse(a *model.Action) (ActionResponse, error) {
	details, err := json.Marshal(a.Details)
	if err != nil {
		return ActionResponse{}, err
	}
	return ActionResponse{
		ID:                     a.ID.String(),
		ActionType:             string(a.ActionType),
		ActionStatus:           string(a.Status),
		ActionPriority:         string(a.Priority),
		Title:                  a.Title,
		CustomerActionRequired: a.CustomerActionRequired,
		DueDate:                a.DueDate,
		ActionDetails:          details,
		CreatedAt:              a.CreatedAt,
	}, nil
}

// List returns the board's actions newest first plus the founding
// service request. The route sits behind the board gate middleware, so
// reaching this handler means the viewer is allowed to see the data.
// @Summary      List board actions
// @Tags         Actions
// @Produce      json
// @Param        ref path string true "Board reference"
// @Success      200 {object} ActionListResponse
// @Failure      401 {object} map[string]bool
// @Security     BearerAuth
// @Router       /boards/{ref}/actions [get]
func (h *ActionHandler) List(c *gin.Context) {
	value, exists := c.Get(middleware.BoardKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Board not resolved"})
		return
	}
	board, ok := value.(*model.Board)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Board not resolved"})
		return
	}

	actions, err := h.actionRepo.GetByBoardID(c.Request.Context(), board.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve actions"})
		return
	}

	resp := ActionListResponse{Actions: make([]ActionResponse, 0, len(actions))}
	for i := range actions {
		ar, err := actionResponse(&actions[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode action"})
			return
		}
		resp.Actions = append(resp.Actions, ar)
	}

	sr, err := h.srRepo.GetByBoardID(c.Request.Context(), board.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service request"})
		return
	}
	if sr != nil {
		resp.ServiceRequest = &ServiceRequestResponse{
			CustomerName:  sr.CustomerName,
			CustomerEmail: sr.CustomerEmail,
			Summary:       sr.Summary,
			Details:       sr.Details,
			RequestedAt:   sr.RequestedAt,
		}
	}

	c.JSON(http.StatusOK, resp)
}

type CreateActionRequest struct {
	ActionType             string          `json:"action_type" binding:"required"`
	Title                  string          `json:"title" binding:"required"`
	ActionPriority         string          `json:"action_priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerActionRequired bool            `json:"is_customer_action_required"`
	DueDate                *time.Time      `json:"due_date"`
	ActionDetails          json.RawMessage `json:"action_details"`
}

// Create adds an action to the board timeline. This is the endpoint the
// external add-action form posts to; the form then signals the viewer
// side to invalidate and refetch.
// @Summary      Add action
// @Tags         Actions
// @Accept       json
// @Produce      json
// @Param        ref path string true "Board reference"
// @Param        request body CreateActionRequest true "Action"
// @Success      201 {object} ActionResponse
// @Router       /boards/{ref}/actions [post]
func (h *ActionHandler) Create(c *gin.Context) {
	value, exists := c.Get(middleware.BoardKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Board not resolved"})
		return
	}
	board := value.(*model.Board)

	var req CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	details, err := model.DecodeDetails(model.ActionType(req.ActionType), req.ActionDetails)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or malformed action details"})
		return
	}

	priority := model.ActionPriority(req.ActionPriority)
	if priority == "" {
		priority = model.PriorityMedium
	}

	action := &model.Action{
		ID:                     uuid.New(),
		BoardID:                board.ID,
		ActionType:             model.ActionType(req.ActionType),
		Status:                 model.ActionStatusPending,
		Priority:               priority,
		Title:                  req.Title,
		CustomerActionRequired: req.CustomerActionRequired,
		DueDate:                req.DueDate,
		Details:                model.DetailsColumn{Details: details},
	}

	if err := h.actionRepo.Create(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create action"})
		return
	}

	ar, err := actionResponse(action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode action"})
		return
	}
	c.JSON(http.StatusCreated, ar)
}

type UpdateActionStatusRequest struct {
	ActionStatus string `json:"action_status" binding:"required,oneof=pending in_progress completed failed cancelled"`
}

// UpdateStatus sets the generic progress status of an action
// @Summary      Update action status
// @Tags         Actions
// @Accept       json
// @Produce      json
// @Param        id path string true "Action ID"
// @Param        request body UpdateActionStatusRequest true "Status"
// @Success      200 {object} map[string]string
// @Router       /actions/{id}/status [patch]
func (h *ActionHandler) UpdateStatus(c *gin.Context) {
	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action ID format"})
		return
	}

	var req UpdateActionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.actionRepo.UpdateStatus(c.Request.Context(), actionID, model.ActionStatus(req.ActionStatus)); err != nil {
		if errors.Is(err, repository.ErrActionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Action status updated"})
}

type ConfirmAppointmentRequest struct {
	ConfirmationStatus string `json:"confirmation_status" binding:"required"`
}

// ConfirmAppointment records an externally driven confirmation outcome
// on an appointment_scheduling action and syncs the linked appointment
// row. The transition table is enforced here, at the mutation boundary;
// rendering accepts whatever state is stored.
// @Summary      Record appointment confirmation outcome
// @Tags         Actions
// @Accept       json
// @Produce      json
// @Param        id path string true "Action ID"
// @Param        request body ConfirmAppointmentRequest true "Outcome"
// @Success      200 {object} ActionResponse
// @Failure      409 {object} map[string]string
// @Router       /actions/{id}/confirm-appointment [post]
func (h *ActionHandler) ConfirmAppointment(c *gin.Context) {
	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action ID format"})
		return
	}

	var req ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	target := model.ConfirmationStatus(req.ConfirmationStatus)
	if !model.IsValidConfirmation(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown confirmation status"})
		return
	}

	action, err := h.actionRepo.GetByID(c.Request.Context(), actionID)
	if err != nil {
		if errors.Is(err, repository.ErrActionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Action not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve action"})
		return
	}

	details, ok := action.Details.Details.(*model.AppointmentSchedulingDetails)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action is not an appointment"})
		return
	}

	if !model.CanTransition(details.ConfirmationStatus, target) {
		c.JSON(http.StatusConflict, gin.H{"error": "Confirmation outcome already recorded"})
		return
	}

	details.ConfirmationStatus = target
	if err := h.actionRepo.Update(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update action"})
		return
	}

	if details.AppointmentID != uuid.Nil {
		if err := h.apptRepo.UpdateStatus(c.Request.Context(), details.AppointmentID, target); err != nil &&
			!errors.Is(err, repository.ErrAppointmentNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync appointment"})
			return
		}
	}

	ar, err := actionResponse(action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode action"})
		return
	}
	c.JSON(http.StatusOK, ar)
}
