package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient реализует Client через go-openai (OpenAI, OpenRouter и совместимые API).
type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func newOpenAIClient(cfg Config, logger *zap.Logger) (*openAIClient, error) {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = openaigo.GPT4oMini
	}
	return &openAIClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  model,
		logger: logger.With(zap.String("provider", ProviderOpenAI), zap.String("model", model)),
	}, nil
}

func (c *openAIClient) GenerateText(ctx context.Context, req GenerationRequest) (text string, usage UsageInfo, err error) {
	started := time.Now()
	defer func() { observe(ProviderOpenAI, req.Operation, started, usage, err) }()

	messages := make([]openaigo.ChatCompletionMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		role := openaigo.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openaigo.ChatMessageRoleAssistant
		}
		messages = append(messages, openaigo.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	request := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32Val(req.Params.Temperature),
		MaxTokens:   intVal(req.Params.MaxTokens),
		TopP:        float32Val(req.Params.TopP),
	}
	if req.Params.JSONResponse {
		request.ResponseFormat = &openaigo.ChatCompletionResponseFormat{Type: openaigo.ChatCompletionResponseFormatTypeJSONObject}
	}

	c.logger.Debug("Отправка запроса к AI",
		zap.String("operation", req.Operation),
		zap.Int("system_prompt_bytes", len(req.SystemPrompt)),
		zap.Int("messages", len(req.Messages)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		c.logger.Warn("Ошибка от AI API", zap.String("operation", req.Operation), zap.Duration("duration", time.Since(started)), zap.Error(err))
		return "", usage, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	text = resp.Choices[0].Message.Content
	if resp.Usage.TotalTokens > 0 {
		usage = UsageInfo{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	} else {
		usage = estimateUsage(req, text)
	}
	c.logger.Debug("Ответ от AI API получен",
		zap.String("operation", req.Operation),
		zap.Duration("duration", time.Since(started)),
		zap.Int("total_tokens", usage.TotalTokens),
	)
	return text, usage, nil
}
