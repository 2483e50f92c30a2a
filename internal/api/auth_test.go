package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbooks/internal/api"
	"schoolbooks/internal/apitest"
)

func parse(t *testing.T, tok string, secret []byte) *api.Claims {
	t.Helper()
	claims := &api.Claims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	return claims
}

func TestJWTSignerCarriesPrincipal(t *testing.T) {
	secret := []byte("test-secret")
	s := &api.JWTSigner{Secret: secret, Issuer: "schoolbooks-web", TTL: time.Minute}

	ctx := api.WithPrincipal(context.Background(), api.Principal{Subject: "op-1", Role: "ADMIN"})
	tok, err := s.Sign(ctx)
	require.NoError(t, err)

	claims := parse(t, tok, secret)
	assert.Equal(t, "op-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "schoolbooks-web", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTSignerDefaultsToStorefront(t *testing.T) {
	secret := []byte("k")
	tok, err := (&api.JWTSigner{Secret: secret}).Sign(context.Background())
	require.NoError(t, err)

	claims := parse(t, tok, secret)
	assert.Equal(t, "storefront", claims.Subject)
	assert.Equal(t, "GUEST", claims.Role)
}

func TestJWTSignerNeedsSecret(t *testing.T) {
	_, err := (&api.JWTSigner{}).Sign(context.Background())
	assert.Error(t, err)
}

func TestJWTSignerSetsHeader(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL(), api.WithAuthorizer(&api.JWTSigner{Secret: []byte("k")}))

	_, err := c.Orders.List(context.Background())
	require.NoError(t, err)
	req, _ := srv.Last(http.MethodGet, "/api/orders")
	assert.True(t, strings.HasPrefix(req.Auth, "Bearer "))
	assert.Equal(t, 3, strings.Count(strings.TrimPrefix(req.Auth, "Bearer "), ".")+1)
}
