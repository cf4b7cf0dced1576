// Package jwt implementa auth.AuthVerifier para tokens HS256 emitidos por el
// servicio de identidad. La emisión de tokens no vive en este servicio.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-dispatch/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingSub    = errors.New("token missing subject")
)

type Config struct {
	Secret string
	// Issuer opcional; si se define, se exige en el claim iss.
	Issuer string
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
	}, nil
}

// TokenClaims es el payload esperado: sub, email y role (user|guide, opcional).
type TokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(v.issuer))
	}

	var tc TokenClaims
	_, err := gojwt.ParseWithClaims(token, &tc, func(*gojwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, ErrMissingSub
	}

	// Un role desconocido se ignora; el middleware lo resuelve por cuenta.
	role, _ := auth.ParseRole(tc.Role)

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(tc.Email),
		Role:   role,
	}, nil
}
