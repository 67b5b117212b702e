package handler

import (
	"context"
	"net/http"
	"time"

	"serviceboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentRepository is the appointment persistence surface the
// handlers need.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ConfirmationStatus) error
}

type AppointmentHandler struct {
	boardRepo  BoardRepository
	apptRepo   AppointmentRepository
	actionRepo ActionRepository
}

func NewAppointmentHandler(boardRepo BoardRepository, apptRepo AppointmentRepository, actionRepo ActionRepository) *AppointmentHandler {
	return &AppointmentHandler{
		boardRepo:  boardRepo,
		apptRepo:   apptRepo,
		actionRepo: actionRepo,
	}
}

type AppointmentResponse struct {
	ID                  string    `json:"id"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	AppointmentType     string    `json:"appointment_type"`
	Location            string    `json:"location,omitempty"`
	PlatformName        string    `json:"platform_name,omitempty"`
	PlatformLink        string    `json:"platform_link,omitempty"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes,omitempty"`
}

func appointmentResponse(a *model.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                  a.ID.String(),
		AppointmentDatetime: a.Datetime,
		AppointmentType:     string(a.AppointmentType),
		Location:            a.Location,
		PlatformName:        a.PlatformName,
		PlatformLink:        a.PlatformLink,
		Status:              string(a.Status),
		Notes:               a.Notes,
	}
}

// List returns all appointments of a board ordered by scheduled instant
// @Summary      List board appointments
// @Tags         Appointments
// @Produce      json
// @Param        ref path string true "Board reference"
// @Success      200 {array} AppointmentResponse
// @Failure      404 {object} map[string]string
// @Router       /boards/{ref}/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	ref := c.Param("ref")

	board, err := h.boardRepo.GetByRef(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	appts, err := h.apptRepo.GetByBoardID(c.Request.Context(), board.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}

	response := make([]AppointmentResponse, len(appts))
	for i := range appts {
		response[i] = appointmentResponse(&appts[i])
	}

	c.JSON(http.StatusOK, response)
}

type CreateAppointmentRequest struct {
	AppointmentDatetime time.Time `json:"appointment_datetime" binding:"required"`
	AppointmentType     string    `json:"appointment_type" binding:"omitempty,oneof=on_site virtual phone"`
	Location            string    `json:"location"`
	PlatformName        string    `json:"platform_name"`
	PlatformLink        string    `json:"platform_link"`
	Notes               string    `json:"notes"`
	Title               string    `json:"title" binding:"required"`
}

// Create schedules an appointment and writes its canonical
// appointment_scheduling action onto the board timeline in one step
// @Summary      Schedule appointment
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        ref path string true "Board reference"
// @Param        request body CreateAppointmentRequest true "Appointment"
// @Success      201 {object} AppointmentResponse
// @Router       /boards/{ref}/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	ref := c.Param("ref")

	board, err := h.boardRepo.GetByRef(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	apptType := model.AppointmentType(req.AppointmentType)
	if apptType == "" {
		apptType = model.AppointmentOnSite
	}

	appt := &model.Appointment{
		ID:              uuid.New(),
		BoardID:         board.ID,
		Datetime:        req.AppointmentDatetime,
		AppointmentType: apptType,
		Location:        req.Location,
		PlatformName:    req.PlatformName,
		PlatformLink:    req.PlatformLink,
		Status:          model.ConfirmationPending,
		Notes:           req.Notes,
	}

	if err := h.apptRepo.Create(c.Request.Context(), appt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	action := &model.Action{
		ID:                     uuid.New(),
		BoardID:                board.ID,
		ActionType:             model.ActionAppointmentScheduling,
		Status:                 model.ActionStatusPending,
		Priority:               model.PriorityHigh,
		Title:                  req.Title,
		CustomerActionRequired: true,
		Details: model.DetailsColumn{Details: &model.AppointmentSchedulingDetails{
			AppointmentID:      appt.ID,
			ConfirmationStatus: model.ConfirmationPending,
			Datetime:           appt.Datetime,
			Location:           appt.Location,
			PlatformName:       appt.PlatformName,
			PlatformLink:       appt.PlatformLink,
		}},
	}
	if err := h.actionRepo.Create(c.Request.Context(), action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create scheduling action"})
		return
	}

	c.JSON(http.StatusCreated, appointmentResponse(appt))
}
