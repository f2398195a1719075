package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/catalog"
	"github.com/mrlokans/folio/internal/config"
	"github.com/mrlokans/folio/internal/content"
	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/chapters"
	"github.com/mrlokans/folio/internal/database/favourites"
	"github.com/mrlokans/folio/internal/database/follows"
	"github.com/mrlokans/folio/internal/database/users"
	"github.com/mrlokans/folio/internal/database/viewmarkers"
	"github.com/mrlokans/folio/internal/engagement"
	http_controllers "github.com/mrlokans/folio/internal/http"
	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/pagination"
	"github.com/mrlokans/folio/internal/ranking"
	"github.com/mrlokans/folio/internal/scheduler"
	"github.com/mrlokans/folio/internal/tasks"
	"github.com/mrlokans/folio/internal/views"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}

	// Background work stops after in-flight requests are drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logging.Info().Msg("server exiting")
}

func Run(cfg *config.Config, version string) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logging.Info().Str("version", version).Msg("starting folio")

	if !cfg.Auth.SecureCookies {
		logging.Warn().Msg("SECURE_COOKIES is disabled, session cookies will be sent over plain HTTP")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing database")
		}
	}()

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	chaptersRepo := chapters.NewRepository(db.DB)
	markersRepo := viewmarkers.NewRepository(db.DB)

	ledger := engagement.NewLedger(booksRepo, usersRepo, favourites.NewRepository(db.DB), follows.NewRepository(db.DB))
	counter := views.NewCounter(markersRepo, cfg.Auth.SessionLifetime)
	contentService := content.NewService(booksRepo, chaptersRepo, usersRepo, counter)

	// Task queue and the view marker purge
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var purgeScheduler *scheduler.ViewMarkerPurgeScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.Register(tasks.NewPurgeViewMarkersQueue(markersRepo))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.ViewMarkers.PurgeEnabled {
			purgeScheduler = scheduler.NewViewMarkerPurgeScheduler(taskClient, cfg.ViewMarkers.PurgeSchedule)
			if err := purgeScheduler.Start(taskCtx); err != nil {
				logging.Fatal().Err(err).Msg("failed to start view marker purge scheduler")
			}
		}
	} else {
		logging.Warn().Msg("task queue disabled, expired view markers will not be purged")
	}

	// Authentication
	authService := auth.NewService(usersRepo, cfg.Auth)
	throttle := auth.NewTokenThrottle(auth.ThrottleConfig{})
	defer throttle.Stop()

	sqlDB, err := db.DB.DB()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to get SQL DB for sessions")
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize session manager")
	}

	if ok, _ := usersRepo.HasUsers(context.Background()); !ok {
		logging.Info().Msg("no users found, create one with the create-user command")
	}

	routerCfg := http_controllers.RouterConfig{
		Engagement:      ledger,
		Catalog:         catalog.NewBrowser(booksRepo),
		Rankings:        ranking.NewEngine(booksRepo),
		Content:         contentService,
		Database:        db,
		Version:         version,
		AuthMiddleware:  auth.NewMiddleware(authService, throttle),
		SessionManager:  sessionManager,
		PageLimits:      pagination.Limits{DefaultSize: cfg.Catalog.DefaultPageSize, MaxSize: cfg.Catalog.MaxPageSize},
		RankingMaxLimit: cfg.Catalog.RankingMaxLimit,
		SecureCookies:   cfg.Auth.SecureCookies,
		EnableMetrics:   true,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if purgeScheduler != nil {
			purgeScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
