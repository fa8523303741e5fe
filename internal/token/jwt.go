// Package token issues and verifies the self-contained session tokens handed
// out after a successful OTP verification. Tokens are HS256 JWTs carrying the
// account identity; there is no server-side session state, so a token stands
// on its own until its expiry.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/insurai/authcore/internal/domain"
)

// Claims are the session claims embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// Issuer signs and verifies session tokens with a process-wide secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

// NewIssuer creates a session token issuer. validity is the fixed window from
// issuance after which tokens are rejected.
func NewIssuer(secret string, validity time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Issue signs a token bound to the account identity, valid from now for the
// configured window.
func (i *Issuer) Issue(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		AccountID: accountID.String(),
		Email:     email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a token string and returns its claims. Malformed, tampered
// and expired tokens all fail with the same UnauthorizedError.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, &domain.UnauthorizedError{Message: "invalid or expired session"}
	}

	return claims, nil
}
