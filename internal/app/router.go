package app

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"time"

	"quizgym/internal/app/apiresp"
	"quizgym/internal/app/observability"
	"quizgym/internal/cache"
	"quizgym/internal/logging"
	"quizgym/internal/quiz"
	"quizgym/internal/quizimport"
	"quizgym/internal/seed"
	"quizgym/internal/submission"
	"quizgym/internal/topic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter wires every HTTP route. topicCache may be nil, in which case topic
// lookups during imports go straight to postgres.
func NewRouter(cfg Config, db *sql.DB, topicCache *cache.Cache) http.Handler {
	collector := observability.NewCollector(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(collector.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", csrfHeaderName},
		ExposedHeaders:   []string{"X-Import-ID", middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler)

	var lookupCache topic.Cache
	if topicCache != nil {
		lookupCache = topicCache
	}

	topicHandler := topic.NewHandler(topic.NewService(db))
	quizHandler := quiz.NewHandler(quiz.NewService(db))
	submissionHandler := submission.NewHandler(submission.NewService(db))

	samples, err := seed.DefaultSamples()
	if err != nil {
		panic(err)
	}
	seedHandler := seed.NewHandler(seed.NewService(db, samples))

	importSvc := quizimport.NewService(
		quizimport.PostgresSessions(db, lookupCache, cfg.TopicCacheTTL),
		collector,
	)
	importHandler := quizimport.NewHandler(importSvc, cfg.MaxUploadBytes())
	uploadLimiter := NewIPRateLimiter(cfg.UploadRateLimitPerMin, time.Minute)

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = "web/static"
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/readyz", readyHandler(db, topicCache))
	r.Get("/metrics", collector.MetricsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(CSRFMiddleware(cfg.CSRFEnforced))

		api.Post("/topics", topicHandler.Create)
		api.Get("/topics", topicHandler.List)
		api.Get("/topics/{id}", topicHandler.Get)

		api.Post("/quizzes", quizHandler.Create)
		api.Get("/quizzes/topic/{topicID}", quizHandler.ListByTopic)
		api.Get("/quizzes/{id}", quizHandler.Get)

		api.Post("/submissions", submissionHandler.Create)
		api.Get("/submissions", submissionHandler.List)

		api.Post("/init-data", seedHandler.Init)

		api.With(RateLimitMiddleware(uploadLimiter)).Post("/upload-quizzes", importHandler.Upload)
		api.Get("/download-template", importHandler.DownloadTemplate)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	return r
}

func readyHandler(db *sql.DB, topicCache *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db == nil {
			apiresp.WriteError(w, r, http.StatusServiceUnavailable, "database not configured")
			return
		}
		if err := db.PingContext(ctx); err != nil {
			logging.FromContext(r.Context()).Warn("readiness: database", "error", err)
			apiresp.WriteError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		if topicCache != nil {
			if err := topicCache.HealthCheck(ctx); err != nil {
				logging.FromContext(r.Context()).Warn("readiness: cache", "error", err)
				apiresp.WriteError(w, r, http.StatusServiceUnavailable, "cache unavailable")
				return
			}
		}
		apiresp.WriteOK(w, r, http.StatusOK, map[string]any{"database": "ok"})
	}
}
