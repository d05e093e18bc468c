// Package ai содержит клиент для текстовых LLM: Gemini, OpenAI-совместимые API и Ollama.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Поддерживаемые провайдеры.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ErrAIGenerationFailed - ошибка при генерации текста AI.
var ErrAIGenerationFailed = errors.New("ai generation failed")

// ErrNoCredentials возвращается отключенным клиентом, если ключ API не задан.
var ErrNoCredentials = errors.New("ai credentials are not configured")

// Role - роль реплики в диалоге.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message - одна реплика диалога.
type Message struct {
	Role    Role
	Content string
}

// GenerationParams - параметры сэмплирования. Указатели позволяют отличить 0 от "не задано".
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
	// JSONResponse просит бэкенд вернуть JSON-объект, если он это поддерживает.
	JSONResponse bool
}

// GenerationRequest описывает один запрос к модели.
type GenerationRequest struct {
	// Operation - метка для метрик и логов (character_response, mood_analysis, ...).
	Operation    string
	SystemPrompt string
	Messages     []Message
	Params       GenerationParams
}

// UsageInfo содержит информацию об использовании токенов.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client - интерфейс для взаимодействия с LLM.
type Client interface {
	// GenerateText возвращает сгенерированный текст и информацию об использовании.
	// Любая ошибка транспорта или пустой ответ оборачивается в ErrAIGenerationFailed.
	GenerateText(ctx context.Context, req GenerationRequest) (string, UsageInfo, error)
}

// Config - настройки клиента.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewClient создает клиент выбранного провайдера. Без ключа (кроме Ollama) возвращает
// отключенный клиент, который не ходит в сеть и всегда отвечает ErrNoCredentials.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (Client, error) {
	log := logger.Named("AIClient")
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	if provider != ProviderOllama && strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("AI API key is not set, generation will use fallback responses", zap.String("provider", provider))
		return disabledClient{}, nil
	}

	var (
		client Client
		err    error
	)
	switch provider {
	case ProviderGemini:
		client, err = newGeminiClient(ctx, cfg, log)
	case ProviderOpenAI:
		client, err = newOpenAIClient(cfg, log)
	case ProviderOllama:
		client, err = newOllamaClient(cfg, log)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	log.Info("AI client created", zap.String("provider", provider), zap.Duration("timeout", cfg.Timeout))
	return client, nil
}

// disabledClient используется, когда ключ API не задан.
type disabledClient struct{}

func (disabledClient) GenerateText(_ context.Context, req GenerationRequest) (string, UsageInfo, error) {
	aiRequestsTotal.WithLabelValues("disabled", operationLabel(req.Operation), "no_credentials").Inc()
	return "", UsageInfo{}, ErrNoCredentials
}

// NewDisabledClient возвращает клиент без доступа к модели.
func NewDisabledClient() Client {
	return disabledClient{}
}

func operationLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}

func float32Ptr(f64 *float64) *float32 {
	if f64 == nil {
		return nil
	}
	f32 := float32(*f64)
	return &f32
}

func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 0 // 0 - API подставит значение по умолчанию
	}
	return float32(*f64)
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
