package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mangafandb/database"
	"mangafandb/internal/cache"
	"mangafandb/internal/config"
	"mangafandb/internal/logger"
	"mangafandb/internal/microservices/http-api/handler"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("database_unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	store, closeCache := openCache(ctx, cfg, logger)
	defer closeCache()

	authSvc := buildAuth(db, cfg)
	router := handler.NewRouter(handler.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, authSvc, buildHandlers(db, store, authSvc, cfg))

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	if cfg.TokenPruneInterval > 0 {
		go service.RunTokenPruner(workerCtx, authSvc, cfg.TokenPruneInterval, logger)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", cfg.Addr(), "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
		stopWorkers()
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown_failed", "error", err)
			return
		}
		logger.Info("server_stopped_gracefully")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

// openCache prefers Redis and falls back to the in-process LRU when REDIS_URL
// is empty or unreachable.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func()) {
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err == nil {
			logger.Info("cache_backend", "type", "redis")
			return rc, func() { _ = rc.Close() }
		}
		logger.Warn("redis_unavailable_using_memory_cache", "error", err)
	}
	logger.Info("cache_backend", "type", "memory", "size", cfg.CacheSize)
	return cache.NewMemoryCache(cfg.CacheSize, cfg.CacheExpiry()), func() {}
}

func buildAuth(db *gorm.DB, cfg *config.Config) service.AuthService {
	return service.NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db), cfg)
}

func buildHandlers(db *gorm.DB, store cache.Cache, authSvc service.AuthService, cfg *config.Config) handler.Handlers {
	ttl := cfg.CacheExpiry()

	users := repository.NewUserRepository(db)
	notifications := repository.NewNotificationRepository(db)
	seriesRepo := repository.NewSeriesRepo(db)
	volumes := repository.NewVolumeRepo(db)
	chapters := repository.NewChapterRepo(db)
	arcs := repository.NewArcRepo(db)
	characters := repository.NewCharacterRepo(db)
	orgs := repository.NewOrganizationRepo(db)
	tags := repository.NewTagRepo(db)
	gambles := repository.NewGambleRepo(db)
	events := repository.NewEventRepo(db)
	spoilers := repository.NewChapterSpoilerRepo(db)
	guides := repository.NewGuideRepo(db)
	annotations := repository.NewAnnotationRepo(db)
	media := repository.NewMediaRepo(db)
	badges := repository.NewBadgeRepo(db)

	userSvc := service.NewUserService(users)
	badgeSvc := service.NewBadgeService(badges, users)
	eventSvc := service.NewEventService(events, arcs, characters, tags, store, ttl, cfg.TimelineProximity)

	return handler.Handlers{
		Auth:            handler.NewAuthHandler(authSvc),
		Users:           handler.NewUserHandler(userSvc, badgeSvc),
		Badges:          handler.NewBadgeHandler(badgeSvc),
		Notifications:   handler.NewNotificationHandler(service.NewNotificationService(notifications)),
		Series:          handler.NewSeriesHandler(service.NewSeriesService(seriesRepo, store, ttl)),
		Volumes:         handler.NewVolumeHandler(service.NewVolumeService(volumes, chapters)),
		Arcs:            handler.NewArcHandler(service.NewArcService(arcs, store, ttl), eventSvc, userSvc),
		Chapters:        handler.NewChapterHandler(service.NewChapterService(chapters)),
		Characters:      handler.NewCharacterHandler(service.NewCharacterService(characters, orgs, store), eventSvc, userSvc),
		Organizations:   handler.NewOrganizationHandler(service.NewOrganizationService(orgs)),
		Tags:            handler.NewTagHandler(service.NewTagService(tags, store)),
		Gambles:         handler.NewGambleHandler(service.NewGambleService(gambles, characters, store), eventSvc, userSvc),
		Events:          handler.NewEventHandler(eventSvc, userSvc),
		ChapterSpoilers: handler.NewChapterSpoilerHandler(service.NewChapterSpoilerService(spoilers), userSvc),
		Guides:          handler.NewGuideHandler(service.NewGuideService(guides, tags, notifications), userSvc),
		Annotations:     handler.NewAnnotationHandler(service.NewAnnotationService(annotations, notifications), userSvc),
		Media:           handler.NewMediaHandler(service.NewMediaService(media, notifications), userSvc),
		Moderation:      handler.NewModerationHandler(service.NewModerationService(guides, annotations, media, events)),
		Search:          handler.NewSearchHandler(service.NewSearchService(repository.NewSearchRepo(db)), userSvc),
		Health: handler.NewHealthHandler(map[string]handler.Check{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"cache":    store.Ping,
		}),
	}
}
