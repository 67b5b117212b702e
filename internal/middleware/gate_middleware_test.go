package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"serviceboard/internal/middleware"
	"serviceboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeBoardResolver serves boards out of a map keyed by ref.
type fakeBoardResolver struct {
	boards map[string]*model.Board
}

func (f *fakeBoardResolver) GetByRef(_ context.Context, ref string) (*model.Board, error) {
	return f.boards[ref], nil
}

func setupRouter(resolver *fakeBoardResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	jwtSecret := "test-secret-key"

	protected := r.Group("/boards/:ref/actions")
	protected.Use(middleware.BoardGateMiddleware(jwtSecret, resolver))

	protected.GET("", func(c *gin.Context) {
		value, exists := c.Get(middleware.BoardKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Board not found in context"})
			return
		}
		board := value.(*model.Board)

		c.JSON(http.StatusOK, gin.H{
			"message":   "Access granted",
			"board_ref": board.BoardRef,
		})
	})

	return r
}

func generateTestToken(boardRef, jwtSecret string) string {
	claims := jwt.MapClaims{
		"board_ref": boardRef,
		"exp":       jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	return tokenString
}

func newResolver(gatedRef, openRef string) *fakeBoardResolver {
	hash := "$2a$10$notarealhashbutnonempty..............."
	return &fakeBoardResolver{boards: map[string]*model.Board{
		gatedRef: {
			ID:           uuid.New(),
			BoardRef:     gatedRef,
			Status:       model.BoardStatusActive,
			PasswordHash: &hash,
		},
		openRef: {
			ID:       uuid.New(),
			BoardRef: openRef,
			Status:   model.BoardStatusActive,
		},
	}}
}

func TestBoardGateMiddleware_UngatedBoardPasses(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))

	req, _ := http.NewRequest("GET", "/boards/open-ref/actions", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: no token required for an ungated board
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), "open-ref")
}

func TestBoardGateMiddleware_GatedBoardWithoutToken(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))

	req, _ := http.NewRequest("GET", "/boards/gated-ref/actions", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: locked signal, distinct from a generic error
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requires_password":true`)
}

func TestBoardGateMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))
	token := generateTestToken("gated-ref", "test-secret-key")

	req, _ := http.NewRequest("GET", "/boards/gated-ref/actions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
}

func TestBoardGateMiddleware_TokenForOtherBoard(t *testing.T) {
	// Arrange: a valid token, but scoped to a different board
	router := setupRouter(newResolver("gated-ref", "open-ref"))
	token := generateTestToken("some-other-ref", "test-secret-key")

	req, _ := http.NewRequest("GET", "/boards/gated-ref/actions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requires_password":true`)
}

func TestBoardGateMiddleware_InvalidToken(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))

	req, _ := http.NewRequest("GET", "/boards/gated-ref/actions", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requires_password":true`)
}

func TestBoardGateMiddleware_InvalidAuthFormat(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))

	req, _ := http.NewRequest("GET", "/boards/gated-ref/actions", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"requires_password":true`)
}

func TestBoardGateMiddleware_UnknownBoard(t *testing.T) {
	// Arrange
	router := setupRouter(newResolver("gated-ref", "open-ref"))

	req, _ := http.NewRequest("GET", "/boards/missing-ref/actions", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board not found")
}
