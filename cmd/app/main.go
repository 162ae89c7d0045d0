package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"dareboard/internal/api"
	"dareboard/internal/middleware"
	"dareboard/internal/repository"
	"dareboard/internal/service"
	"dareboard/pkg/auth"
	"dareboard/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	userService := service.NewUserService(repo)
	dareService := service.NewDareService(repo, cfg.Lifecycle.DareExpiryDays)
	completionService := service.NewCompletionService(repo)
	feedHub := api.NewFeedHub()
	engagementService := service.NewEngagementService(repo, feedHub)
	lifecycleService := service.NewLifecycleService(repo, repo, cfg.Lifecycle)
	rankingService := service.NewRankingService(repo, repo)

	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)
	authorization := middleware.NewAuthorization(userService)
	adminOnly := authorization.AdminOnly()

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewUserRoutes(a, userService, telegramAuth)
	api.NewDareRoutes(a, dareService, rankingService, telegramAuth, adminOnly)
	api.NewCompletionRoutes(a, completionService, rankingService, telegramAuth)
	api.NewEngagementRoutes(a, engagementService, telegramAuth, adminOnly)
	api.NewLifecycleRoutes(a, lifecycleService, telegramAuth, adminOnly)
	api.NewFeedRoutes(a, feedHub, telegramAuth)

	go runSweepLoop(lifecycleService, cfg.Lifecycle.SweepIntervalMinutes)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

// runSweepLoop triggers the lifecycle sweep on a fixed schedule. The sweep
// is idempotent, so overlapping a manual trigger is safe.
func runSweepLoop(ls service.LifecycleServiceI, intervalMinutes int) {
	zapLogger := logger.Logger()

	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := ls.RunSweep(context.Background()); err != nil {
			zapLogger.Error("scheduled sweep failed", zap.Error(err))
		}
	}
}
