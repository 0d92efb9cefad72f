package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/config"
	"github.com/byunchangill/youtube-hot-finder/internal/db"
	"github.com/byunchangill/youtube-hot-finder/internal/handler"
	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/repository"
	"github.com/byunchangill/youtube-hot-finder/internal/router"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
	"github.com/byunchangill/youtube-hot-finder/internal/youtube"
	"github.com/byunchangill/youtube-hot-finder/migrations"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "youtube-hot-finder")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.MigrateFS(cfg.DatabaseURL, migrations.FS, "."); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	credRepo := repository.NewCredentialRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	logRepo := repository.NewSearchLogRepo(pool)

	credSvc := service.NewCredentialService(credRepo, cfg.QuotaThreshold, cfg.FallbackAPIKey)
	scoreSvc := service.NewScoreService()
	filterSvc := service.NewFilterService()

	httpClient := &http.Client{Timeout: 15 * time.Second}
	client := youtube.NewClient(cfg.YouTubeBaseURL, credSvc, httpClient, cfg.RequestsPerSec)

	logWorker := service.NewLogWorker(logRepo, 5*time.Second)
	quotaWorker := service.NewQuotaWorker(credSvc, handler.Metrics.CredentialQuotaUsed, time.Minute)
	go logWorker.Start(ctx)
	go quotaWorker.Start(ctx)

	searchSvc := service.NewSearchService(
		client, credSvc, scoreSvc, filterSvc, cache,
		videoRepo, channelRepo, logRepo, logWorker,
	)
	searchSvc.SetMetrics(&service.PipelineMetrics{
		UpstreamCalls: handler.Metrics.UpstreamCallsTotal,
		QuotaUnits:    handler.Metrics.QuotaUnitsTotal,
		CacheHits:     handler.Metrics.CacheHits,
		CacheMisses:   handler.Metrics.CacheMisses,
	})

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Hot Finder API",
		ServerHeader: "HotFinder",
	})

	h := &router.Handlers{
		Search:  handler.NewSearchHandler(searchSvc),
		Video:   handler.NewVideoHandler(searchSvc),
		Channel: handler.NewChannelHandler(searchSvc),
		Key:     handler.NewKeyHandler(credSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("hot-finder backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
