package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a jwt")

// TokenInfo is the subset of registered claims the session layer uses.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	HasExpiry bool
}

// Inspector parses tokens unverified and judges expiry with a leeway.
type Inspector struct {
	leeway time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewInspector returns an Inspector. A nil now uses time.Now.
func NewInspector(leeway time.Duration, now func() time.Time) *Inspector {
	if leeway < 0 {
		leeway = 0
	}
	if now == nil {
		now = time.Now
	}
	return &Inspector{
		leeway: leeway,
		now:    now,
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// Inspect returns the claims of token. Tokens that are not three-segment JWTs
// return ErrNotJWT.
func (i *Inspector) Inspect(token string) (TokenInfo, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return TokenInfo{}, ErrNotJWT
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, errors.Join(ErrNotJWT, err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.HasExpiry = true
	}
	return info, nil
}

// Expired reports whether token carries an exp claim that is in the past by
// more than the leeway. Opaque tokens and tokens without exp never expire here.
func (i *Inspector) Expired(token string) bool {
	info, err := i.Inspect(token)
	if err != nil || !info.HasExpiry {
		return false
	}
	return i.now().After(info.ExpiresAt.Add(i.leeway))
}
