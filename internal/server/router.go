package server

import (
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/api/handlers"
	"github.com/cloo-solutions/relicguide/internal/api/middleware"
	"github.com/cloo-solutions/relicguide/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const defaultMaxBodyBytes int64 = 1 << 20

type RouterConfig struct {
	Logger          *logrus.Logger
	Metrics         *metrics.Collector
	MaxBodyBytes    int64
	OutputDir       string
	ImagesDir       string
	ChatHandler     *handlers.ChatHandler
	VideoHandler    *handlers.VideoHandler
	RelicHandler    *handlers.RelicHandler
	TeamHandler     *handlers.TeamHandler
	FrontendHandler *handlers.FrontendHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	// Recoverer sits outside Sentry so the panic is reported before it is
	// turned into a 500.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	r.Get("/health", handlers.Health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/relics", cfg.RelicHandler.List)
		r.Get("/team", cfg.TeamHandler.Get)
		r.Post("/generate", cfg.ChatHandler.Generate)
		r.Post("/generate-video", cfg.VideoHandler.GenerateVideo)
	})

	r.Get("/", cfg.FrontendHandler.Serve)
	r.Get("/index.html", cfg.FrontendHandler.Serve)

	mountDir(r, "/output", cfg.OutputDir)
	mountDir(r, "/images", cfg.ImagesDir)

	return r
}

// mountDir serves files under dir at prefix. An unset dir leaves the prefix
// to the NotFound handler.
func mountDir(r chi.Router, prefix, dir string) {
	if dir == "" {
		return
	}
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
