package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/handlers"
	"github.com/jasado/jasado-middleware/app/middleware"
	"github.com/jasado/jasado-middleware/app/services"
	"github.com/jasado/jasado-middleware/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) Router {
	t.Helper()
	tokens, err := services.NewTokenService(time.Hour, 24*time.Hour, "jasado", "jasado-admin", false, "", "", "test-secret-key-for-jwt-signing-32-chars")
	require.NoError(t, err)

	cfg := &config.ProductionConfig{
		Server: config.ServerConfig{
			BodyLimit:         1024 * 1024,
			ReadTimeout:       time.Second,
			WriteTimeout:      time.Second,
			IdleTimeout:       time.Second,
			EnableCompression: true,
		},
		Security: config.SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Deployment: config.DeploymentConfig{Version: "1.2.3"},
	}

	reg := prometheus.NewRegistry()
	logger, _ := test.NewNullLogger()
	r := NewFiberRouter(
		cfg,
		Handlers{
			AdminAuth:  handlers.NewAdminAuthHandler(nil),
			Pricing:    handlers.NewPricingHandler(nil, nil, nil),
			Exports:    handlers.NewExportHandler(nil),
			Operations: handlers.NewOperationsHandler(nil),
		},
		middleware.NewAuthMiddleware(tokens),
		middleware.NewHTTPMetrics(reg),
		reg,
		logger,
	)
	r.SetupRoutes()
	return r
}

func TestRouterPublicEndpoints(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "Health",
			path:       "/api/v1/health",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var out dto.APIResponse
				require.NoError(t, json.Unmarshal(body, &out))
				assert.True(t, out.Success)
				assert.Equal(t, "1.2.3", out.Data.(map[string]any)["version"])
			},
		},
		{
			name:       "Swagger",
			path:       "/api/v1/swagger.json",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var doc map[string]any
				require.NoError(t, json.Unmarshal(body, &doc))
				assert.Contains(t, doc["paths"], "/api/v1/admin/pricing/run")
			},
		},
		{
			name:       "NotFound",
			path:       "/api/v1/unknown",
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"NOT_FOUND"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := r.GetApp().Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			tt.check(t, body)
		})
	}

	t.Run("MetricsAfterTraffic", func(t *testing.T) {
		resp, err := r.GetApp().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "http_requests_total")
	})
}

func TestRouterProtectsAdminRoutes(t *testing.T) {
	r := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/admin/pricing/run"},
		{http.MethodGet, "/api/v1/admin/pricing/settings"},
		{http.MethodPut, "/api/v1/admin/pricing/settings"},
		{http.MethodGet, "/api/v1/admin/products/1/price-history"},
		{http.MethodPost, "/api/v1/admin/exports/build"},
		{http.MethodGet, "/api/v1/admin/exports/aera.xlsx"},
		{http.MethodGet, "/api/v1/admin/logs"},
		{http.MethodGet, "/api/v1/admin/tasks"},
		{http.MethodPost, "/api/v1/admin/auth/logout"},
	} {
		t.Run(route.method+route.path, func(t *testing.T) {
			resp, err := r.GetApp().Test(httptest.NewRequest(route.method, route.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
