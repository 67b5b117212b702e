package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Board tokens are minted after a successful password verification and
// grant access to a single board's gated content. They are scoped by
// the board's public reference, not by any user account.

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func GenerateBoardToken(boardRef string) (string, error) {
	expiryHours, _ := strconv.Atoi(os.Getenv("BOARD_TOKEN_EXPIRY_HOURS"))
	if expiryHours <= 0 {
		expiryHours = 24
	}
	claims := jwt.MapClaims{
		"board_ref": boardRef,
		"exp":       time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ParseBoardToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["board_ref"] == nil {
		return "", errors.New("invalid claims")
	}

	ref, ok := claims["board_ref"].(string)
	if !ok {
		return "", errors.New("invalid claims")
	}
	return ref, nil
}
