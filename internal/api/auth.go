package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authorizer decorates an outgoing request with credentials.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

type AuthorizerFunc func(ctx context.Context, req *http.Request) error

func (f AuthorizerFunc) Authorize(ctx context.Context, req *http.Request) error { return f(ctx, req) }

// BearerToken sends the same token on every request.
func BearerToken(token string) Authorizer {
	return AuthorizerFunc(func(_ context.Context, req *http.Request) error {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	})
}

// Principal is who a backend call is made for.
type Principal struct {
	Subject string
	Role    string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSigner mints a short-lived HS256 token per request for the principal on the context.
// Storefront calls without a principal go out as the "storefront" guest.
type JWTSigner struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

func (s *JWTSigner) Authorize(ctx context.Context, req *http.Request) error {
	tok, err := s.Sign(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	return nil
}

func (s *JWTSigner) Sign(ctx context.Context) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwt signer: empty secret")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	p, ok := PrincipalFrom(ctx)
	if !ok || p.Subject == "" {
		p = Principal{Subject: "storefront", Role: "GUEST"}
	}
	t := now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(t),
			ExpiresAt: jwt.NewNumericDate(t.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
