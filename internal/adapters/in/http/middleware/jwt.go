// Package middleware holds the echo middlewares of the orders API.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	BearerPrefix = "bearer"

	// SubjectContextKey holds the token subject on the echo context.
	SubjectContextKey = "subject"
)

// JWTConfig configures bearer-token authentication.
type JWTConfig struct {
	// Secret is the HS256 signing key. An empty secret disables authentication.
	Secret string
	Issuer string
}

// JWTAuth rejects requests without a valid HS256 bearer token.
func JWTAuth(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if config.Secret == "" {
			return next
		}
		return func(c echo.Context) error {
			subject, err := authenticate(c.Request(), config)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized").SetInternal(err)
			}
			c.Set(SubjectContextKey, subject)
			return next(c)
		}
	}
}

func authenticate(r *http.Request, config JWTConfig) (string, error) {
	tokenString, err := extractBearerToken(r)
	if err != nil {
		return "", err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if config.Issuer != "" {
		options = append(options, jwt.WithIssuer(config.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(config.Secret), nil
	}, options...)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("missing subject claim")
	}

	return claims.Subject, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerPrefix) {
		return "", errors.New("invalid authorization format")
	}

	return parts[1], nil
}
