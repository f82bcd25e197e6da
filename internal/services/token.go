package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"gudang/internal/apperrors"
)

const defaultTokenTTL = 24 * time.Hour

// Issuer creates and validates signed session tokens. Tokens are not
// stored server-side; validity is determined solely by signature and
// expiration.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer from the configured signing secret and token
// lifetime. expiresIn must be of the form "<int>h"; an empty or unparsable
// value falls back to 24 hours.
func NewIssuer(secret, expiresIn string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    parseExpiresIn(expiresIn),
	}
}

func parseExpiresIn(expiresIn string) time.Duration {
	if strings.HasSuffix(expiresIn, "h") {
		if hours, err := strconv.Atoi(strings.TrimSuffix(expiresIn, "h")); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return defaultTokenTTL
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token asserting the given user's identity, expiring at
// now + TTL. A missing signing secret is a deployment misconfiguration and
// surfaces as a configuration error.
func (i *Issuer) Issue(userID, username string) (string, error) {
	if len(i.secret) == 0 {
		return "", apperrors.Configuration("signing secret is not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      now.Add(i.ttl).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Parse validates a token's signature and expiry and returns its claims.
// It must use the same secret, algorithm and claim names as Issue.
func (i *Issuer) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindAuthentication, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Authentication("invalid token")
	}
	return claims, nil
}
