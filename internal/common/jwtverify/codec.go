package jwtverify

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/common/constants"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

var ErrInvalidSecret = errors.New("jwt secret must be at least 32 bytes")

var (
	ErrTokenExpired = commonerrors.NewDomainError(
		"TOKEN_EXPIRED",
		commonerrors.CategoryUnauthorized,
		401,
		"Token has expired",
	)

	ErrTokenInvalid = commonerrors.NewDomainError(
		"INVALID_TOKEN",
		commonerrors.CategoryUnauthorized,
		401,
		"Invalid token",
	)
)

// Principal is the identity carried by a verified credential.
type Principal struct {
	UserID   int64
	Username string
}

type tokenClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 credentials with a fixed symmetric secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	parser *jwt.Parser
}

func NewCodec(secret string, ttl time.Duration, clk clock.Clock) (*Codec, error) {
	if len(secret) < constants.JWTSecretMinLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSecret, len(secret))
	}
	if ttl == 0 {
		ttl = constants.DefaultTokenTTL
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}

	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clk.Now),
		),
	}, nil
}

func (c *Codec) Issue(p Principal) (string, error) {
	return c.IssueWithTTL(p, c.ttl)
}

// IssueWithTTL signs p with an explicit lifetime. A negative ttl yields a
// credential that is already expired.
func (c *Codec) IssueWithTTL(p Principal, ttl time.Duration) (string, error) {
	now := c.clock.Now()
	claims := tokenClaims{
		UserID:   p.UserID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}

func (c *Codec) Verify(tokenString string) (Principal, error) {
	var claims tokenClaims
	_, err := c.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired.WithCause(err)
		}
		return Principal{}, ErrTokenInvalid.WithCause(err)
	}
	if claims.UserID <= 0 || claims.Username == "" {
		return Principal{}, ErrTokenInvalid.WithCause(errors.New("missing userId or username claim"))
	}

	return Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
