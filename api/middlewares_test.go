package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableCORS(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.config.cors.trustedOrigins = []string{"http://ui.local"}

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("Origin", "http://ui.local")
	rec := httptest.NewRecorder()
	composeRoutes(app).ServeHTTP(rec, req)
	assert.Equal(t, "http://ui.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec = httptest.NewRecorder()
	composeRoutes(app).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnableCORS_Preflight(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.config.cors.trustedOrigins = []string{"http://ui.local"}

	req := httptest.NewRequest(http.MethodOptions, "/v1/todos", nil)
	req.Header.Set("Origin", "http://ui.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	composeRoutes(app).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
