package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGuard(t *testing.T) {
	h := newHarness(t)

	var resp *http.Response
	entries := captureLogs(t, func() {
		resp = h.get(t, "/admin")
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	e, ok := findLog(entries, "access.denied.admin")
	require.True(t, ok, "anonymous admin access should be logged")
	assert.Equal(t, "warn", e.Level)

	// A session nobody is bound to is refused outright.
	resp = h.get(t, "/admin", &http.Cookie{Name: "sid", Value: "stale"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Access denied")

	resp = h.get(t, "/admin", h.adminSID(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Dashboard")
}

func TestLoginSuccessAndFailureAreLogged(t *testing.T) {
	h := newHarness(t)

	var bad, good *http.Response
	entries := captureLogs(t, func() {
		bad = h.post(t, "/login", url.Values{"email": {adminEmail}, "password": {"Wr0ngPass!"}})
		good = h.post(t, "/login", url.Values{"email": {"ADMIN@schoolbooks.test"}, "password": {adminPassword}})
	})

	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Contains(t, body(t, bad), "Invalid email or password")
	fail, ok := findLog(entries, "auth.login.fail")
	require.True(t, ok)
	assert.Equal(t, adminEmail, fail.Fields["email"])

	assert.Equal(t, http.StatusFound, good.StatusCode)
	assert.Equal(t, "/admin", good.Header.Get("Location"))
	assert.Equal(t, "success|Welcome back", flash(good))
	_, ok = findLog(entries, "auth.login.success")
	assert.True(t, ok)

	sid := cookie(good, "sid")
	require.NotEmpty(t, sid)
	resp := h.get(t, "/admin", &http.Cookie{Name: "sid", Value: sid})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Already signed in: the login page forwards to the back-office.
	resp = h.get(t, "/login", &http.Cookie{Name: "sid", Value: sid})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLoginIssuesFreshSession(t *testing.T) {
	h := newHarness(t)
	planted := &http.Cookie{Name: "sid", Value: "planted-sid"}

	resp := h.post(t, "/login", url.Values{"email": {adminEmail}, "password": {adminPassword}}, planted)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	sid := cookie(resp, "sid")
	require.NotEmpty(t, sid)
	assert.NotEqual(t, planted.Value, sid)

	resp = h.get(t, "/admin", planted)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "a sid chosen before login stays anonymous")
	resp = h.get(t, "/admin", &http.Cookie{Name: "sid", Value: sid})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Signing in again rotates the sid and retires the current one.
	resp = h.post(t, "/login", url.Values{"email": {adminEmail}, "password": {adminPassword}}, &http.Cookie{Name: "sid", Value: sid})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	next := cookie(resp, "sid")
	assert.NotEqual(t, sid, next)
	resp = h.get(t, "/admin", &http.Cookie{Name: "sid", Value: sid})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t)
	sid := h.adminSID(t)

	resp := h.post(t, "/logout", nil, sid)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = h.get(t, "/admin", sid)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginIsRateLimited(t *testing.T) {
	h := newHarness(t)

	var last *http.Response
	entries := captureLogs(t, func() {
		for i := 0; i < 6; i++ {
			last = h.post(t, "/login", url.Values{"email": {adminEmail}, "password": {"Wr0ngPass!"}})
		}
	})
	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	assert.Contains(t, body(t, last), "Too many attempts")
	_, ok := findLog(entries, "rate.login.hit")
	assert.True(t, ok)
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	h := newHarness(t)
	h.csrf = "forged"

	var resp *http.Response
	entries := captureLogs(t, func() {
		resp = h.post(t, "/contact", url.Values{"name": {"Eve"}})
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, ok := findLog(entries, "csrf.fail")
	assert.True(t, ok)
}
