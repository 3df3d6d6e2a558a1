package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"infographic/internal/http/handlers"
	"infographic/internal/infra"
	"infographic/internal/middleware"
)

type RouterOptions struct {
	Config        *infra.Config
	Logger        zerolog.Logger
	CountryLookup middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	if opts.Config.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	// Logger sits outside Recoverer so recovered panics are logged and
	// counted as 500s.
	r.Use(
		middleware.RequestID,
		middleware.Logger(opts.Logger, opts.CountryLookup),
		chimw.Recoverer,
		middleware.CORS(opts.Config.CORSOrigins),
	)

	r.Get("/healthz", app.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", app.Root)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
		r.With(middleware.RateLimit(opts.Config.RateLimitPerMin, time.Minute)).
			Post("/generate-infographic", app.GenerateInfographic)
		r.Get("/infographics", app.ListInfographics)
		r.Get("/infographic/{id}", app.GetInfographic)
	})

	return r
}
