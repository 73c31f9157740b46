// Package token issues and verifies the stateless bearer credentials used by
// the API. Tokens are HS256 JWTs; validity is signature correctness plus
// expiry. There is no server-side token table and no revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/deptworks/consultancy-api/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

var (
	// ErrSecretMissing is a configuration failure: the process has no
	// signing secret, so no token can be issued or verified.
	ErrSecretMissing = errors.New("token: signing secret is not configured")
	// ErrNoIdentity means the user record lacks the id or role required
	// to mint a credential.
	ErrNoIdentity = errors.New("token: user must have an id and a role")
	// ErrInvalidToken covers any verification failure: bad signature,
	// wrong algorithm, malformed payload, or expiry.
	ErrInvalidToken = errors.New("token: invalid or expired token")
)

// Claims is the JWT payload. The jti carries a fresh random 128-bit
// identifier per issuance for traceability, not revocation.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// Config captures the signing parameters, injected at construction rather
// than read from the environment at call time.
type Config struct {
	Secret   string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// Issuer mints and verifies bearer tokens. The signing algorithm is fixed
// to HS256; verification rejects any other algorithm so a forged header
// cannot downgrade the check.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Issue signs a token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrSecretMissing
	}
	if user == nil || user.ID == "" || user.Role == "" {
		return "", ErrNoIdentity
	}

	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Role:  user.Role,
		Email: user.Email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies signature and expiry and returns the typed claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrSecretMissing
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Identity maps verified claims to the caller identity handlers consume.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.Subject, Role: c.Role, Email: c.Email}
}
