package middleware

import (
	"context"
	"net/http"
	"strings"

	"serviceboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// BoardKey is the gin context key under which the gate stores the
// resolved board for downstream handlers.
const BoardKey = "board"

// BoardResolver looks up a board by its public reference.
type BoardResolver interface {
	GetByRef(ctx context.Context, ref string) (*model.Board, error)
}

// BoardGateMiddleware resolves the board from the :ref route parameter
// and enforces the password gate. Ungated boards pass through; gated
// boards require a Bearer board token whose board_ref claim matches the
// route. A locked response is 401 with requires_password set so the
// client can tell it apart from a generic failure.
func BoardGateMiddleware(jwtSecret string, boards BoardResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("ref")

		board, err := boards.GetByRef(c.Request.Context(), ref)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
			c.Abort()
			return
		}
		if board == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			c.Abort()
			return
		}

		if !board.IsGated() {
			c.Set(BoardKey, board)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"requires_password": true})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"requires_password": true})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"requires_password": true})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"requires_password": true})
			c.Abort()
			return
		}

		tokenRef, ok := claims["board_ref"].(string)
		if !ok || tokenRef != ref {
			// A token for some other board does not open this one.
			c.JSON(http.StatusUnauthorized, gin.H{"requires_password": true})
			c.Abort()
			return
		}

		c.Set(BoardKey, board)
		c.Next()
	}
}
