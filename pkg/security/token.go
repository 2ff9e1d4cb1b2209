package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var ErrInvalidToken = errors.New("invalid token")

// MakeToken signs a bearer token for the given user. The user id travels
// inside the claim as its decimal string form and is converted back to an
// integer in ParseToken. These two functions are the only place where the
// conversion happens
func MakeToken(userID uint) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": strconv.FormatUint(uint64(userID), 10),
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(viper.GetInt("jwt.ttl_hours")) * time.Hour).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns the user id it was minted for
func ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(id), nil
}
