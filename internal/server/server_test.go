package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/priyanshps/fundtrack/internal/app"
	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/models"
	"github.com/priyanshps/fundtrack/internal/services/fund"
	"github.com/priyanshps/fundtrack/internal/services/portfolio"
	"github.com/priyanshps/fundtrack/internal/storage/memory"
)

// stubNAVClient serves canned NAV records for API tests.
type stubNAVClient struct {
	records []models.NAVRecord
	err     error
}

func (s *stubNAVClient) LatestNAV(ctx context.Context, schemeCodes []string) ([]models.NAVRecord, error) {
	return s.records, s.err
}

func (s *stubNAVClient) ListOpenSchemes(ctx context.Context) ([]models.NAVRecord, error) {
	return s.records, s.err
}

// newTestServer builds a Server over in-memory storage and a stub NAV feed.
func newTestServer(t *testing.T, nav *stubNAVClient) *Server {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"

	logger := common.NewSilentLogger()
	storageManager := memory.NewManager()
	cache := portfolio.NewResultCache(config.Cache.GetTTL())
	scheduler := portfolio.NewScheduler(time.Hour, 0, logger)
	t.Cleanup(scheduler.Stop)

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		NAVClient:        nav,
		PortfolioService: portfolio.NewService(storageManager, nav, cache, scheduler, logger),
		FundService:      fund.NewService(nav, logger),
		Cache:            cache,
		Scheduler:        scheduler,
		StartupTime:      time.Now(),
	}

	return NewServer(a)
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerAndLogin runs the register/login flow and returns the user's token.
func registerAndLogin(t *testing.T, srv *Server, email, password string) string {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, "register: %s", rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, "login: %s", rec.Body.String())

	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok, "login response missing token")
	return token
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestVersionEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, decodeBody(t, rec), "version")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	rec := doJSON(t, srv, http.MethodDelete, "/api/auth/register", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{})

	req := httptest.NewRequest(http.MethodOptions, "/api/portfolio/get", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestFundsList(t *testing.T) {
	nav := &stubNAVClient{records: []models.NAVRecord{
		{SchemeCode: "119552", SchemeName: "Fund X", NetAssetValue: 100, Date: "29-Aug-2026"},
		{SchemeCode: "119552", SchemeName: "Fund X duplicate", NetAssetValue: 999, Date: "29-Aug-2026"},
		{SchemeCode: "100033", SchemeName: "Fund Y", NetAssetValue: 50, Date: "29-Aug-2026"},
	}}
	srv := newTestServer(t, nav)

	rec := doJSON(t, srv, http.MethodGet, "/api/funds", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var funds []models.NAVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &funds))
	require.Len(t, funds, 2)
	require.Equal(t, "Fund X", funds[0].SchemeName)
}

func TestFundsList_FeedError(t *testing.T) {
	srv := newTestServer(t, &stubNAVClient{err: context.DeadlineExceeded})

	rec := doJSON(t, srv, http.MethodGet, "/api/funds", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Error fetching mutual fund data", decodeBody(t, rec)["error"])
}
