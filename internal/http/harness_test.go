package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"schoolbooks/internal/api"
	"schoolbooks/internal/apitest"
	"schoolbooks/internal/config"
	"schoolbooks/internal/events"
	"schoolbooks/internal/http/handlers"
	"schoolbooks/internal/repos"
)

const (
	adminEmail    = "admin@schoolbooks.test"
	adminPassword = "Passw0rd!"
)

type harness struct {
	app  *fiber.App
	api  *apitest.Server
	ops  *repos.OperatorRepo
	msgs *repos.ContactRepo
	csrf string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.New(t)
	db, err := repos.OpenDB(":memory:", repos.Seed{Email: adminEmail, Name: "Admin", Password: adminPassword})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		APIBaseURL:        srv.BaseURL(),
		APIToken:          "backend-secret-token",
		DBDSN:             ":memory:",
		StaticDir:         "../../web/static",
		ContactTopic:      "contact-messages",
		LowStockThreshold: 10,
	}
	client := api.New(srv.BaseURL(), api.WithAuthorizer(api.BearerToken(cfg.APIToken)))
	deps := handlers.NewDeps(client, db, cfg, events.Noop{})
	app := handlers.NewApp(cfg, handlers.NewEngine("../../web/templates"), deps)

	h := &harness{app: app, api: srv, ops: repos.NewOperatorRepo(db), msgs: repos.NewContactRepo(db)}
	resp := h.get(t, "/login")
	h.csrf = cookie(resp, "csrf_")
	require.NotEmpty(t, h.csrf, "csrf cookie should be issued on GET")
	return h
}

// adminSID binds a fresh session to the seeded operator.
func (h *harness) adminSID(t *testing.T) *http.Cookie {
	t.Helper()
	op, err := h.ops.ByEmail(adminEmail)
	require.NoError(t, err)
	require.NoError(t, h.ops.StartSession("", "sid-admin", op.ID, time.Hour))
	return &http.Cookie{Name: "sid", Value: "sid-admin"}
}

func (h *harness) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (h *harness) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return h.do(t, req)
}

// post submits a form with a valid CSRF token.
func (h *harness) post(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", h.csrf)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return h.do(t, req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// flash decodes the banner a redirect carries to the next page.
func flash(resp *http.Response) string {
	raw, err := url.QueryUnescape(cookie(resp, "flash"))
	if err != nil {
		return ""
	}
	return raw
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

// captureLogs swaps the standard logger output for the duration of fn.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
