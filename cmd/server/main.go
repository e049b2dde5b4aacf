package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pantry/internal/domain/accounts"
	"pantry/internal/domain/audit"
	"pantry/internal/domain/calendar"
	"pantry/internal/domain/catalog"
	"pantry/internal/domain/reports"
	"pantry/internal/domain/selections"
	"pantry/internal/domain/wfh"
	"pantry/internal/platform/config"
	"pantry/internal/platform/db"
	"pantry/internal/platform/metrics"
	"pantry/internal/transport/http/api"
	adminhandler "pantry/internal/transport/http/handlers/admin"
	authhandler "pantry/internal/transport/http/handlers/auth"
	cataloghandler "pantry/internal/transport/http/handlers/catalog"
	selectionshandler "pantry/internal/transport/http/handlers/selections"
	usershandler "pantry/internal/transport/http/handlers/users"
	wfhhandler "pantry/internal/transport/http/handlers/wfh"
	"pantry/internal/transport/http/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	cutoffs, err := selections.NewCutoffs(cfg.MorningEditCutoff, cfg.EveningEditCutoff)
	if err != nil {
		slog.Error("invalid cutoff configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	usersSvc := accounts.NewService(pool, cfg.AdminSignupCode)
	calendarSvc := calendar.NewService(pool)
	catalogSvc := catalog.NewService(pool)
	wfhSvc := wfh.NewService(pool)
	selectionsSvc := selections.NewService(pool, calendarSvc, wfhSvc, catalogSvc, cutoffs)
	reportsSvc := reports.NewService(pool, calendarSvc)
	auditSvc := audit.NewService(pool)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(1 << 20))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Auth(cfg.JWTSecret, usersSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(usersSvc, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL).RegisterRoutes(r)

		catalogHandler := cataloghandler.NewHandler(catalogSvc, auditSvc)
		catalogHandler.RegisterRoutes(r)
		selectionshandler.NewHandler(selectionsSvc).RegisterRoutes(r)
		wfhhandler.NewHandler(wfhSvc).RegisterRoutes(r)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireApproved, middleware.RequireRole(accounts.RoleAdmin))
			usershandler.NewHandler(usersSvc, auditSvc).RegisterAdminRoutes(r)
			catalogHandler.RegisterAdminRoutes(r)
			adminhandler.NewHandler(calendarSvc, wfhSvc, reportsSvc, auditSvc).RegisterAdminRoutes(r)
			r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	slog.Info("pantry server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
