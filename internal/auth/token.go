package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atinyakov/TaskKeeper/internal/models"
)

// TokenTTL is the lifetime of an issued token.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by Authenticate for every failure mode:
// bad signature, wrong issuer or audience, expired, or malformed.
// Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller derived from a valid token.
type Identity struct {
	// UserID is the numeric identifier of the user.
	UserID int64
	// Username is the user's login name.
	Username string
	// Email is the user's email address.
	Email string
}

// claims is the JWT claim set carried by issued tokens.
type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenConfig holds the immutable signing material, built once at
// startup and shared by the issuer and the authenticator.
type TokenConfig struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration

	// now is the clock, overridable in tests.
	now func() time.Time
}

// NewTokenConfig validates the signing material and returns a
// TokenConfig. Empty secret, issuer, or audience is a configuration
// error; the caller is expected to treat it as fatal at startup.
func NewTokenConfig(secret, issuer, audience string) (*TokenConfig, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	if issuer == "" {
		return nil, errors.New("token issuer is not configured")
	}
	if audience == "" {
		return nil, errors.New("token audience is not configured")
	}
	return &TokenConfig{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      TokenTTL,
		now:      time.Now,
	}, nil
}

// IssueToken signs a time-bounded identity assertion for the user.
// Every call embeds a fresh random jti, so two tokens for the same
// user are never equal. Returns the signed token and its expiry.
func (c *TokenConfig) IssueToken(user *models.User) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Username: user.Username,
		Email:    user.Email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Authenticate verifies an inbound token string and extracts the
// caller's identity. Signature, issuer, audience, and expiry are all
// checked with zero clock-skew tolerance; any failure yields
// ErrInvalidToken with no further detail.
func (c *TokenConfig) Authenticate(tokenString string) (Identity, error) {
	parsed := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, parsed,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID:   userID,
		Username: parsed.Username,
		Email:    parsed.Email,
	}, nil
}
