package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервиса dreamscribe.
type Config struct {
	// Настройки сервера
	Port               string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	MetricsEnabled     bool          `envconfig:"METRICS_ENABLED" default:"true"`

	// Логирование
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"LOG_OUTPUT" default:""`

	// Настройки AI
	AIProvider string        `envconfig:"AI_PROVIDER" default:"gemini"`
	AIModel    string        `envconfig:"AI_MODEL" default:""`
	AIBaseURL  string        `envconfig:"AI_BASE_URL" default:""`
	AITimeout  time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	// Ключ может прийти из переменной окружения или из Docker secret (ai_api_key).
	AIAPIKey string `envconfig:"AI_API_KEY"`

	FactExtractionEnabled bool `envconfig:"FACT_EXTRACTION_ENABLED" default:"true"`

	// Демо-пользователь, от имени которого работает API
	DemoUsername string `envconfig:"DEMO_USERNAME" default:"demo"`
	DemoPassword string `envconfig:"DEMO_PASSWORD" default:"demo"`
	SeedDemoData bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов.
// Отсутствие ключа AI не ошибка: генерация будет отдавать запасные ответы.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации dreamscribe: %w", err)
	}

	if strings.TrimSpace(cfg.AIAPIKey) == "" {
		if secret, err := ReadSecret("ai_api_key"); err == nil {
			cfg.AIAPIKey = secret
		}
	}

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	switch cfg.AIProvider {
	case "gemini", "openai", "ollama":
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q (expected gemini, openai or ollama)", cfg.AIProvider)
	}
	if cfg.DemoUsername == "" {
		return nil, fmt.Errorf("DEMO_USERNAME must not be empty")
	}
	return &cfg, nil
}

// HasAIKey сообщает, настроен ли ключ AI.
func (c *Config) HasAIKey() bool {
	return strings.TrimSpace(c.AIAPIKey) != ""
}
