package devapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user and the token generation it was issued for.
// Bumping a user's generation revokes every older token.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"uid"`
	Generation int    `json:"gen"`
}

func GenerateToken(userID string, generation int, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:     userID,
		Generation: generation,
	})
	return token.SignedString(secretKey)
}

func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrorTokenExpired
		}
		return nil, ErrorInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrorInvalidToken
	}
	return claims, nil
}
