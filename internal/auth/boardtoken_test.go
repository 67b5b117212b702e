package auth_test

import (
	"os"
	"testing"
	"time"

	"serviceboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseBoardToken(t *testing.T) {
	// Arrange
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Setenv("BOARD_TOKEN_EXPIRY_HOURS", "24")

	// Act
	boardRef := "ref-abc-123"
	token, err := auth.GenerateBoardToken(boardRef)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedRef, err := auth.ParseBoardToken(token)
	assert.NoError(t, err)
	assert.Equal(t, boardRef, parsedRef)
}

func TestParseBoardToken_InvalidToken(t *testing.T) {
	// Arrange
	os.Setenv("JWT_SECRET", "test-secret-key")

	// Act
	_, err := auth.ParseBoardToken("invalid-token")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseBoardToken_ExpiredToken(t *testing.T) {
	// Arrange: a token that expired an hour ago
	os.Setenv("JWT_SECRET", "test-secret-key")

	claims := jwt.MapClaims{
		"board_ref": "ref-abc-123",
		"exp":       time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte("test-secret-key"))

	// Act
	_, err := auth.ParseBoardToken(expiredToken)

	// Assert
	assert.Error(t, err)
}

func TestParseBoardToken_WrongSecret(t *testing.T) {
	// Arrange: token signed with a different secret
	os.Setenv("JWT_SECRET", "test-secret-key")

	claims := jwt.MapClaims{
		"board_ref": "ref-abc-123",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	forged, _ := token.SignedString([]byte("some-other-secret"))

	// Act
	_, err := auth.ParseBoardToken(forged)

	// Assert
	assert.Error(t, err)
}

func TestParseBoardToken_MissingBoardRefClaim(t *testing.T) {
	// Arrange
	os.Setenv("JWT_SECRET", "test-secret-key")

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("test-secret-key"))

	// Act
	_, err := auth.ParseBoardToken(signed)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, "invalid claims", err.Error())
}
