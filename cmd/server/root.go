package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dreamscribe/internal/config"
	"dreamscribe/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dreamscribe",
		Short:         "Story worlds with AI-driven characters",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Без подкоманды запускаем сервер.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeMoodCmd())
	return root
}

// bootstrap загружает .env, конфигурацию и логгер. Общая часть всех команд;
// service отличает в логах сервер от разовых CLI-запусков.
func bootstrap(service string) (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil {
		// В контейнере .env обычно нет, переменные приходят из окружения
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
		Service:    service,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}
