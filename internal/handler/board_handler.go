package handler

import (
	"context"
	"net/http"
	"time"

	"serviceboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BoardRepository is the board persistence surface the handlers need.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	GetByRef(ctx context.Context, ref string) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
}

// ServiceRequestRepository is the founding-snapshot persistence surface.
type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *model.ServiceRequest) error
	GetByBoardID(ctx context.Context, boardID uuid.UUID) (*model.ServiceRequest, error)
}

type BoardHandler struct {
	boardRepo BoardRepository
	srRepo    ServiceRequestRepository
}

func NewBoardHandler(boardRepo BoardRepository, srRepo ServiceRequestRepository) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		srRepo:    srRepo,
	}
}

type ServiceRequestInput struct {
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"omitempty,email"`
	Summary       string    `json:"summary" binding:"required"`
	Details       string    `json:"details"`
	RequestedAt   time.Time `json:"requested_at" binding:"required"`
}

type CreateBoardRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Password    string               `json:"password" binding:"omitempty,min=4"`
	// ServiceRequest converts a customer request into the board's
	// founding snapshot. Optional: boards can also be created manually.
	ServiceRequest *ServiceRequestInput `json:"service_request"`
}

type BoardResponse struct {
	BoardRef    string `json:"board_ref"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	IsGated     bool   `json:"is_gated"`
	CreatedAt   string `json:"created_at"`
}

type UpdateBoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=draft active pending completed cancelled"`
}

func boardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		BoardRef:    board.BoardRef,
		Title:       board.Title,
		Description: board.Description,
		Status:      string(board.Status),
		IsGated:     board.IsGated(),
		CreatedAt:   board.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new service board, optionally converting a customer
// service request into its founding snapshot
// @Summary      Create board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        request body CreateBoardRequest true "Board"
// @Success      201 {object} BoardResponse
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := &model.Board{
		ID:          uuid.New(),
		BoardRef:    uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.BoardStatusDraft,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
			return
		}
		hashStr := string(hash)
		board.PasswordHash = &hashStr
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	if req.ServiceRequest != nil {
		sr := &model.ServiceRequest{
			ID:            uuid.New(),
			BoardID:       board.ID,
			CustomerName:  req.ServiceRequest.CustomerName,
			CustomerEmail: req.ServiceRequest.CustomerEmail,
			Summary:       req.ServiceRequest.Summary,
			Details:       req.ServiceRequest.Details,
			RequestedAt:   req.ServiceRequest.RequestedAt,
		}
		if err := h.srRepo.Create(c.Request.Context(), sr); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach service request"})
			return
		}
	}

	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetByRef returns board metadata by its public reference. Metadata is
// never gated; only the action list is.
// @Summary      Get board metadata
// @Tags         Boards
// @Produce      json
// @Param        ref path string true "Board reference"
// @Success      200 {object} BoardResponse
// @Failure      404 {object} map[string]string
// @Router       /boards/{ref} [get]
func (h *BoardHandler) GetByRef(c *gin.Context) {
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

	c.JSON(http.StatusOK, boardResponse(board))
}

// Update changes board title, description or lifecycle status
// @Summary      Update board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        ref path string true "Board reference"
// @Param        request body UpdateBoardRequest true "Fields to update"
// @Success      200 {object} BoardResponse
// @Router       /boards/{ref} [put]
func (h *BoardHandler) Update(c *gin.Context) {
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

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		board.Title = req.Title
	}
	if req.Description != "" {
		board.Description = req.Description
	}
	if req.Status != "" {
		board.Status = model.BoardStatus(req.Status)
	}

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}
