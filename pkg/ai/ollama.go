package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3"
)

// ollamaClient реализует Client через нативный API Ollama.
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOllamaClient(cfg Config, logger *zap.Logger) (*ollamaClient, error) {
	base := cfg.BaseURL
	if base == "" {
		base = defaultOllamaURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", base, err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &ollamaClient{
		client:  api.NewClient(u, &http.Client{}),
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger.With(zap.String("provider", ProviderOllama), zap.String("model", model)),
	}, nil
}

func (c *ollamaClient) GenerateText(ctx context.Context, req GenerationRequest) (text string, usage UsageInfo, err error) {
	started := time.Now()
	defer func() { observe(ProviderOllama, req.Operation, started, usage, err) }()

	messages := make([]api.Message, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, api.Message{Role: string(m.Role), Content: m.Content})
	}

	options := map[string]interface{}{}
	if req.Params.Temperature != nil {
		options["temperature"] = *req.Params.Temperature
	}
	if req.Params.TopP != nil {
		options["top_p"] = *req.Params.TopP
	}
	if req.Params.MaxTokens != nil {
		options["num_predict"] = intVal(req.Params.MaxTokens)
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}
	if req.Params.JSONResponse {
		chatReq.Format = json.RawMessage(`"json"`)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp api.ChatResponse
	err = c.client.Chat(requestCtx, chatReq, func(r api.ChatResponse) error {
		resp = r // без стриминга приходит один полный ответ
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("Ошибка таймаута от Ollama API", zap.Duration("timeout", c.timeout), zap.Error(err))
		} else {
			c.logger.Warn("Ошибка от Ollama API", zap.String("operation", req.Operation), zap.Error(err))
		}
		return "", usage, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if resp.Message.Content == "" {
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	text = resp.Message.Content
	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		usage = UsageInfo{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	} else {
		usage = estimateUsage(req, text)
	}
	return text, usage, nil
}
