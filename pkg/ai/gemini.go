package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// geminiClient реализует Client через Google Gen AI SDK.
type geminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger.With(zap.String("provider", ProviderGemini), zap.String("model", model)),
	}, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, req GenerationRequest) (text string, usage UsageInfo, err error) {
	started := time.Now()
	defer func() { observe(ProviderGemini, req.Operation, started, usage, err) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := geminiContents(req.Messages)

	config := &genai.GenerateContentConfig{
		Temperature: float32Ptr(req.Params.Temperature),
		TopP:        float32Ptr(req.Params.TopP),
	}
	if req.Params.MaxTokens != nil {
		config.MaxOutputTokens = int32(*req.Params.MaxTokens)
	}
	if strings.TrimSpace(req.SystemPrompt) != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Params.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.logger.Warn("Ошибка от Gemini API", zap.String("operation", req.Operation), zap.Duration("duration", time.Since(started)), zap.Error(err))
		return "", usage, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", usage, fmt.Errorf("%w: нет кандидатов в ответе", ErrAIGenerationFailed)
	}
	text = resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	if md := resp.UsageMetadata; md != nil && md.TotalTokenCount > 0 {
		usage = UsageInfo{
			PromptTokens:     int(md.PromptTokenCount),
			CompletionTokens: int(md.CandidatesTokenCount),
			TotalTokens:      int(md.TotalTokenCount),
		}
	} else {
		usage = estimateUsage(req, text)
	}
	c.logger.Debug("Ответ от Gemini API получен",
		zap.String("operation", req.Operation),
		zap.Duration("duration", time.Since(started)),
		zap.Int("total_tokens", usage.TotalTokens),
	)
	return text, usage, nil
}

// geminiContents переводит реплики диалога в Content; ответы ассистента у Gemini идут от роли model.
func geminiContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
