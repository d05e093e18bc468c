package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"dreamscribe/internal/config"
	delivery "dreamscribe/internal/delivery/http"
	"dreamscribe/internal/repository/memory"
	"dreamscribe/internal/service"
	"dreamscribe/pkg/ai"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, err := bootstrap("dreamscribe")
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("aiProvider", cfg.AIProvider),
		zap.Bool("aiKeyConfigured", cfg.HasAIKey()),
		zap.Bool("factExtraction", cfg.FactExtractionEnabled),
	)

	aiClient, err := newAIClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Словарь tiktoken грузим заранее, чтобы скачивание не попало в обработку запроса
	go ai.WarmUpTokenizer(30*time.Second, logger)

	store := memory.NewStore()
	services := service.NewServices(store, aiClient, service.Options{FactExtraction: cfg.FactExtractionEnabled}, logger)

	user, err := services.Seed(ctx, service.SeedConfig{
		Username:    cfg.DemoUsername,
		Password:    cfg.DemoPassword,
		DemoContent: cfg.SeedDemoData,
	}, logger)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := delivery.NewRouter(delivery.NewHandler(services, logger), delivery.RouterConfig{
		ActingUserID:   user.ID,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)
	if cfg.MetricsEnabled {
		// Регистрируем после маршрутов, /metrics отдает и метрики AI-клиента
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Генерация может идти до AI_TIMEOUT
		WriteTimeout: cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("HTTP Server listen error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("Server exiting")
	return nil
}

func newAIClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ai.Client, error) {
	return ai.NewClient(ctx, ai.Config{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
		BaseURL:  cfg.AIBaseURL,
		Timeout:  cfg.AITimeout,
	}, logger)
}
