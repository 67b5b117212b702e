package handler

import (
	"net/http"

	"serviceboard/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AccessHandler is the server half of the password gate: it verifies
// the board's shared password and mints the board token that unlocks
// the gated routes.
type AccessHandler struct {
	boardRepo BoardRepository
}

func NewAccessHandler(boardRepo BoardRepository) *AccessHandler {
	return &AccessHandler{boardRepo: boardRepo}
}

type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type VerifyPasswordResponse struct {
	Token string `json:"token"`
}

// VerifyPassword checks the shared password against the board's hash.
// A wrong password is a validation failure the client re-prompts on;
// there is no attempt counter or lockout.
// @Summary      Verify board password
// @Tags         Access
// @Accept       json
// @Produce      json
// @Param        ref path string true "Board reference"
// @Param        request body VerifyPasswordRequest true "Password"
// @Success      200 {object} VerifyPasswordResponse
// @Failure      401 {object} map[string]string
// @Router       /boards/{ref}/verify-password [post]
func (h *AccessHandler) VerifyPassword(c *gin.Context) {
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

	if !board.IsGated() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board is not password protected"})
		return
	}

	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*board.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := auth.GenerateBoardToken(board.BoardRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, VerifyPasswordResponse{Token: token})
}
