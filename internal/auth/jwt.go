// Package auth provides JWT issuance/verification, password hashing and
// the authentication/authorization middleware chain.
//
// JWT here is stateless: everything needed to authenticate a request
// (user id, email, papel, expiry) travels inside the signed token, so
// verification requires no database lookup. There is no revocation —
// expiry is the only bound on a token's validity.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/psouza/gerador-provas/internal/model"
)

// Fixed issuer/audience embedded in every token. A token that parses
// and carries a valid signature but mismatches either of these is
// still invalid — all four checks (signature, expiry, issuer,
// audience) must pass together.
const (
	tokenIssuer   = "gerador-provas"
	tokenAudience = "gerador-provas-api"
)

// Internal verification failure causes. All three collapse to a single
// UNAUTHORIZED response at the HTTP boundary; they stay distinguishable
// so middleware can log the real cause server-side.
var (
	ErrTokenExpired     = errors.New("auth: token expirado")
	ErrTokenMalformed   = errors.New("auth: token inválido")
	ErrTokenNotYetValid = errors.New("auth: token ainda não é válido")
)

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	ID    int64
	Email string
	Papel model.Role
}

// TokenService issues and verifies signed bearer tokens.
//
// It is a pure function of (identity, secret, ttl): no state is kept
// between calls and nothing is persisted server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. An empty secret is refused —
// config.Load already treats it as fatal, this is the defensive check
// for direct construction (tests, future entry points).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: segredo de assinatura vazio")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload: the registered claims plus the email and
// papel of the subject, so /v2/auth/me and the authorization gates work
// without touching the database.
type claims struct {
	Email string `json:"email"`
	Papel string `json:"papel"`
	jwt.RegisteredClaims
}

// Issue creates and signs a token for the given identity, valid for
// the configured lifetime. HS256; subject is the user id in decimal.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()

	c := claims{
		Email: id.Email,
		Papel: string(id.Papel),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: assinando token: %w", err)
	}
	return signed, nil
}

// issueWithDuration signs a token with a custom lifetime. Used by the
// tests in this package to mint already-expired tokens.
func (s *TokenService) issueWithDuration(id Identity, d time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Email: id.Email,
		Papel: string(id.Papel),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify parses and validates a token string and returns the embedded
// identity.
//
// Passing jwt.WithValidMethods pins the algorithm to HS256 — without
// it, an attacker could attempt an algorithm-confusion downgrade.
// Issuer and audience are checked by the library together with the
// signature and expiry.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: método de assinatura inesperado: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Identity{}, ErrTokenNotYetValid
		default:
			return Identity{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("%w: subject não numérico", ErrTokenMalformed)
	}

	papel, err := model.ParseRole(c.Papel)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: papel desconhecido", ErrTokenMalformed)
	}

	return Identity{ID: userID, Email: c.Email, Papel: papel}, nil
}
