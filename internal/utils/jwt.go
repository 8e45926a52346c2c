package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. Email-link tokens carry one of these so a verification
// token can never be replayed as a reset token.
const (
	PurposeVerifyEmail   = "verify_email"
	PurposePasswordReset = "password_reset"
)

// EmailTokenTTL bounds the validity of verification and reset links.
const EmailTokenTTL = time.Hour

var (
	// ErrTokenExpired is returned for structurally valid but stale tokens.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures, wrong purpose and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims is the typed session carried in a customer bearer token.
type SessionClaims struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Admin      bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed bearer token for a logged-in customer.
func GenerateSessionToken(secret string, customerID uuid.UUID, name, email string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		CustomerID: customerID.String(),
		Name:       name,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customerID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAdminToken creates a signed bearer token carrying the admin role.
func GenerateAdminToken(secret, username string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		Name:  username,
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a bearer token and returns its claims.
func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

type emailTokenClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateEmailToken creates a purpose-scoped, time-limited token embedding
// the customer's email address, for use in verification and reset links.
func GenerateEmailToken(secret, email, purpose string) (string, error) {
	claims := &emailTokenClaims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(EmailTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseEmailToken validates an email-link token against the expected purpose
// and returns the embedded email address. Expired tokens are reported
// distinctly from tampered or mis-purposed ones.
func ParseEmailToken(secret, tokenString, purpose string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &emailTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*emailTokenClaims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return "", ErrTokenInvalid
	}

	return claims.Email, nil
}
