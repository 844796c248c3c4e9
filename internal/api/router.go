package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httptransport "example.com/schoolactivities/internal/transport/http"
)

// RouterConfig controls the optional pieces of the HTTP surface.
type RouterConfig struct {
	// StaticDir, when set, is served under /static/ and / redirects to its index.html.
	StaticDir         string
	CORSAllowedOrigin string
	Logger            *zap.Logger
}

// NewRouter assembles the API routes, metrics endpoint and middleware chain.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httptransport.RequestLogger(logger))
	r.Use(httptransport.Metrics)
	r.Use(httptransport.CORS(cfg.CORSAllowedOrigin))

	h.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if cfg.StaticDir != "" {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/static/index.html", http.StatusTemporaryRedirect)
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	})
	return r
}
