// Package auth validates the bearer tokens of drawing sessions. Tokens are
// HMAC-signed JWTs carrying the user id and display name. With no secret
// configured every request is treated as an anonymous guest.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrDisabled     = errors.New("authentication is disabled")
)

type Service struct {
	jwtSecret []byte
}

func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
	}
}

// Enabled reports whether tokens are required.
func (s *Service) Enabled() bool {
	return len(s.jwtSecret) > 0
}

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Guest       bool   `json:"guest,omitempty"`
}

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Guest returns a fresh anonymous user.
func Guest() *User {
	return &User{
		ID:          "anon-" + uuid.New().String()[:8],
		DisplayName: "Anonymous",
		Guest:       true,
	}
}

func (s *Service) ValidateToken(tokenString string) (*User, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	name := c.Name
	if name == "" {
		name = c.Subject
	}
	return &User{ID: c.Subject, DisplayName: name}, nil
}

// IssueToken signs a token for userID that expires after ttl.
func (s *Service) IssueToken(userID, displayName string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
