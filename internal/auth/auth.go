package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialChecker validates a username/password pair. The HTTP layer only
// depends on this interface, so the static check can be swapped for a real
// user store without touching the handlers.
type CredentialChecker interface {
	Check(username, password string) error
}

// StaticChecker compares against a single configured credential pair.
// The stored password may be plaintext or a bcrypt hash.
type StaticChecker struct {
	Username string
	Password string
}

// Check validates the supplied credentials against the configured pair.
// An unset password rejects every attempt, so a missing AUTH_PASSWORD never
// turns into a passwordless account.
func (s StaticChecker) Check(username, password string) error {
	if s.Password == "" {
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) != 1 {
		return ErrInvalidCredentials
	}
	if strings.HasPrefix(s.Password, "$2a$") || strings.HasPrefix(s.Password, "$2b$") {
		if bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// GenerateToken generates an access token for an authenticated user
func GenerateToken(username, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 12).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token
func ValidateToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
