package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/handlers"
	"github.com/SscSPs/ledger_backoffice/internal/metrics"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/SscSPs/ledger_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubHookStates map[string]string

func (s stubHookStates) HookStates() map[string]string { return s }

func newTestRouter(t *testing.T, cfg *config.Config, db handlers.Pinger, rate string) (*gin.Engine, *MockJournalEntryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	entries := new(MockJournalEntryService)
	container := &portssvc.ServiceContainer{
		JournalEntry:    entries,
		Voucher:         new(MockVoucherService),
		Balance:         new(MockBalanceService),
		Hooks:           stubHookStates{"bank_transactions": "closed", "ledger_events": "open"},
	}

	reg := prometheus.NewRegistry()
	infra := handlers.Infrastructure{
		DB:       db,
		Gatherer: reg,
		Metrics:  metrics.New(reg),
	}
	if rate != "" {
		lim, err := middleware.NewRateLimiter(rate, "")
		require.NoError(t, err)
		infra.Limiter = lim
	}

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, infra)
	return r, entries
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          testJWTSecret,
		JWTIssuer:          "ledger-test",
		IsProduction:       true,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
}

func TestRegisterRoutes_Health(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), stubPinger{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status   string            `json:"status"`
		Database string            `json:"database"`
		Hooks    map[string]string `json:"hooks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "up", body.Database)
	assert.Equal(t, "open", body.Hooks["ledger_events"])
}

func TestRegisterRoutes_HealthDatabaseDown(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), stubPinger{err: errors.New("connection refused")}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "down")
}

func TestRegisterRoutes_MetricsExposeHTTPRequests(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), nil, "")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/health"`)
}

func TestRegisterRoutes_APIRequiresToken(t *testing.T) {
	r, entries := newTestRouter(t, testConfig(), nil, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	entries.AssertNotCalled(t, "ListEntries", mock.Anything, mock.Anything)
}

func TestRegisterRoutes_APIRejectsForeignIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.JWTIssuer = "someone-else"
	r, _ := newTestRouter(t, cfg, nil, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken("u1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRoutes_RateLimitPerUser(t *testing.T) {
	r, entries := newTestRouter(t, testConfig(), nil, "1-M")
	entries.On("ListEntries", mock.Anything, mock.Anything).
		Return(&dto.ListJournalEntriesResponse{Entries: []dto.JournalEntryResponse{}}, nil)

	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries", nil)
		req.Header.Set("Authorization", "Bearer "+generateTestToken(userID))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	assert.Equal(t, http.StatusOK, call("bob"))
}

func TestRegisterRoutes_NoSwaggerInProduction(t *testing.T) {
	r, _ := newTestRouter(t, testConfig(), nil, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
