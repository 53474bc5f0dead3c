package api

import (
	"crypto/rand"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zbonzo/warlock/internal/constants"
)

const sessionTTL = 24 * time.Hour

var devSecret []byte

// getSessionSecret returns the configured signing key, generating an
// in-memory one for development when SESSION_SECRET is unset.
func getSessionSecret() ([]byte, error) {
	if secret := os.Getenv(constants.EnvSessionSecret); secret != "" {
		return []byte(secret), nil
	}
	if len(devSecret) == 0 {
		devSecret = make([]byte, 32)
		if _, err := rand.Read(devSecret); err != nil {
			return nil, errors.New("failed to generate dev session secret")
		}
	}
	return devSecret, nil
}

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// issueSessionToken signs a guest session for the given player UUID.
func issueSessionToken(playerUUID, playerName string) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Name: playerName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseSessionToken validates a token and returns the player UUID and
// display name.
func parseSessionToken(token string) (playerUUID, playerName string, err error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", "", err
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", errors.New("invalid session token")
	}
	return claims.Subject, claims.Name, nil
}
