package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/kdduha/chiliguard/docs"
	"github.com/kdduha/chiliguard/internal/cache"
	"github.com/kdduha/chiliguard/internal/camera"
	"github.com/kdduha/chiliguard/internal/chat"
	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/handler"
	"github.com/kdduha/chiliguard/internal/imaging"
	"github.com/kdduha/chiliguard/internal/inference"
	"github.com/kdduha/chiliguard/internal/logger"
	"github.com/kdduha/chiliguard/internal/metrics"
	"github.com/kdduha/chiliguard/internal/middleware"
	"github.com/kdduha/chiliguard/internal/service"
	"github.com/kdduha/chiliguard/internal/state"
)

// @title ChiliGuard scan agent API
// @version 1.0
// @description Captures chili leaf photos, normalizes them, asks the inference service for a diagnosis and keeps the history and assistant chat.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	storage, err := state.NewByEngine(cfg.Storage, cfg.RedisConfig)
	if err != nil {
		log.Fatal("Failed to open storage", zap.String("engine", cfg.Storage.Engine), zap.Error(err))
	}
	store := state.New(ctx, storage, log, state.Options{MaxHistory: cfg.Storage.MaxHistory})
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close storage", zap.Error(err))
		}
	}()

	client := inference.NewClient(cfg.API, log)
	cam := camera.NewFFmpegCamera(cfg.Camera, log)

	normalizer := imaging.NewNormalizer(cfg.Image.Quality, cfg.Image.MaxDimension)
	normalizer.MaxPixels = cfg.Image.MaxPixels

	scanService := service.NewScanService(
		log,
		store,
		normalizer,
		client,
		cam,
	)
	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(
			cfg.RedisConfig.Addr,
			cfg.RedisConfig.Password,
			cfg.RedisConfig.DB,
			cfg.RedisConfig.TTL,
		)
		defer redisCache.Close()
		scanService.SetCacheClient(redisCache)
		log.Info("Set redis as prediction cache", zap.String("addr", cfg.RedisConfig.Addr))
	}
	chatService := service.NewChatService(log, store, chat.NewSimulator(cfg.Chat.Delay))

	scanHandler := handler.NewScanHandler(scanService, cfg.Image.MaxUploadMB)
	cameraHandler := handler.NewCameraHandler(cam)
	stateHandler := handler.NewStateHandler(store)
	chatHandler := handler.NewChatHandler(chatService)
	upstreamHandler := handler.NewUpstreamHandler(client)

	scanLimiter := middleware.NewRateLimiter(log, cfg.Server.ScanRateLimit)
	go scanLimiter.Run(ctx)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		chimiddleware.RequestID,
		middleware.Logger(log),
		chimiddleware.Recoverer,
		middleware.CORS(cfg.Server.CORSOrigins),
		chimiddleware.Throttle(cfg.Server.ThrottleLimit),
		chimiddleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Group(func(r chi.Router) {
		r.Use(scanLimiter.Handler)
		r.Post("/scan", scanHandler.Upload)
		r.Post("/scan/base64", scanHandler.Base64)
		r.Post("/scan/camera", scanHandler.Camera)
	})

	r.Get("/camera/capabilities", cameraHandler.Capabilities)
	r.Post("/camera/facing", cameraHandler.Facing)
	r.Post("/camera/torch", cameraHandler.Torch)

	r.Get("/state", stateHandler.Snapshot)
	r.Post("/state/reset", stateHandler.Reset)
	r.Get("/history", stateHandler.History)
	r.Delete("/history", stateHandler.ClearHistory)
	r.Delete("/history/{id}", stateHandler.RemoveHistory)

	r.Get("/chat", chatHandler.Messages)
	r.Delete("/chat", chatHandler.Clear)
	r.Post("/chat", chatHandler.Ask)
	r.Post("/chat/open", chatHandler.Open)
	r.Post("/chat/stream", chatHandler.AskStream)

	r.Get("/upstream/health", upstreamHandler.Health)
	r.Get("/classes", upstreamHandler.Classes)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Info("Starting server",
			zap.String("address", srv.Addr),
			zap.String("inference", cfg.API.BaseURL),
			zap.String("storage", cfg.Storage.Engine),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server stopped")
}
