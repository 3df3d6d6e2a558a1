package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infographic/internal/adapter/repo"
	"infographic/internal/http/handlers"
	"infographic/internal/infra"
	"infographic/internal/metrics"
	"infographic/internal/providers/image"
)

type fixedProducer struct{}

func (fixedProducer) Name() string { return "fixed" }

func (fixedProducer) Produce(ctx context.Context) (*image.Image, error) {
	return &image.Image{Data: []byte("png!"), Format: "image/png", Prompt: "fixed"}, nil
}

func newTestRouter(rateLimit int) http.Handler {
	return newTestRouterWith(&infra.Config{CORSOrigins: []string{"*"}, RateLimitPerMin: rateLimit}, zerolog.Nop())
}

func newTestRouterWith(cfg *infra.Config, logger zerolog.Logger) http.Handler {
	app := handlers.NewApp(zerolog.Nop(), repo.NewMemoryInfographicRepository(), fixedProducer{})
	return NewRouter(app, RouterOptions{Config: cfg, Logger: logger})
}

func generateFrom(h http.Handler, forwarded string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-infographic", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	req.Header.Set("X-Forwarded-For", forwarded)
	h.ServeHTTP(rec, req)
	return rec.Code
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	req.Header.Set("Origin", "https://poster.example")
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterAPIFlow(t *testing.T) {
	h := newTestRouter(0)

	rec := serve(h, http.MethodGet, "/api/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Infographic Generator API")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://poster.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(h, http.MethodPost, "/api/generate-infographic")
	require.Equal(t, http.StatusOK, rec.Code)
	var gen struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gen))

	rec = serve(h, http.MethodGet, "/api/infographic/"+gen.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/api/infographics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "[{"))

	rec = serve(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "infographic_http_requests_total")
}

func TestRouterRateLimitsGenerate(t *testing.T) {
	h := newTestRouter(1)

	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/api/generate-infographic").Code)
	rec := serve(h, http.MethodPost, "/api/generate-infographic")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Reads are not limited.
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/api/infographics").Code)
}

func TestRouterUnknownID(t *testing.T) {
	rec := serve(newTestRouter(0), http.MethodGet, "/api/infographic/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	h := newTestRouter(1)

	allowed := 0
	for i := 0; i < 10; i++ {
		if generateFrom(h, "10.0.0."+strconv.Itoa(i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestRouterTrustedProxyUsesForwardedFor(t *testing.T) {
	h := newTestRouterWith(&infra.Config{CORSOrigins: []string{"*"}, RateLimitPerMin: 1, TrustProxyHeaders: true}, zerolog.Nop())

	assert.Equal(t, http.StatusOK, generateFrom(h, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, generateFrom(h, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, generateFrom(h, "10.0.0.2"))
}

func TestRouterLogsRecoveredPanics(t *testing.T) {
	var logs bytes.Buffer
	h := newTestRouterWith(&infra.Config{CORSOrigins: []string{"*"}}, zerolog.New(&logs))
	h.(chi.Router).Get("/explode", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/explode", "500")
	before := testutil.ToFloat64(counter)

	rec := serve(h, http.MethodGet, "/explode")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), `"status":500`)
	assert.Contains(t, logs.String(), `"route":"/explode"`)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
