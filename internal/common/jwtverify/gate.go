package jwtverify

import (
	"context"
	"net/http"
	"strings"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

const bearerScheme = "Bearer"

var (
	ErrMissingAuthorization   = commonerrors.Unauthorized("No authorization header provided")
	ErrMalformedAuthorization = commonerrors.Unauthorized("Authorization header format must be: Bearer <token>")
)

type contextKey string

const principalKey contextKey = "principal"

// Verifier is the part of Codec the gate depends on.
type Verifier interface {
	Verify(token string) (Principal, error)
}

// Gate extracts the bearer credential from request headers and verifies it.
type Gate struct {
	verifier Verifier
}

func NewGate(verifier Verifier) *Gate {
	return &Gate{verifier: verifier}
}

func (g *Gate) Authenticate(header http.Header) (Principal, error) {
	raw := header.Get("Authorization")
	if raw == "" {
		return Principal{}, ErrMissingAuthorization
	}

	token, ok := parseBearer(raw)
	if !ok {
		return Principal{}, ErrMalformedAuthorization
	}

	return g.verifier.Verify(token)
}

// OptionalAuthenticate never rejects: any missing, malformed or unverifiable
// credential yields an anonymous request.
func (g *Gate) OptionalAuthenticate(header http.Header) (Principal, bool) {
	p, err := g.Authenticate(header)
	if err != nil {
		return Principal{}, false
	}
	return p, true
}

func parseBearer(raw string) (string, bool) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] != bearerScheme {
		return "", false
	}
	return parts[1], true
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
