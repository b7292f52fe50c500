package resettoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the account a reset token was issued for.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

const tokenTTL = time.Hour

// Generate creates a password-reset token for a user. The signing key should
// include the user's current password hash so every outstanding token dies
// the moment the password changes (single-use in effect).
func Generate(key []byte, userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-retail-inventory",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Validate checks a reset token's signature and expiry against the expected
// user. All failure modes collapse into ErrInvalidToken.
func Validate(key []byte, userID uint, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key, nil
	})
	if err != nil {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID != userID {
		return ErrInvalidToken
	}
	return nil
}
