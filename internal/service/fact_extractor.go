package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/pkg/ai"
)

var (
	factTemperature = 0.2
	factMaxTokens   = 300
)

// FactExtractor извлекает из реплик пользователя факты, которые персонажу стоит запомнить.
type FactExtractor struct {
	ai     ai.Client
	logger *zap.Logger
}

func NewFactExtractor(client ai.Client, logger *zap.Logger) *FactExtractor {
	return &FactExtractor{ai: client, logger: logger.Named("FactExtractor")}
}

// ExtractFacts возвращает список фактов или nil при ошибке.
func (e *FactExtractor) ExtractFacts(ctx context.Context, text string, character *model.Character, world *model.World) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw, _, err := e.ai.GenerateText(ctx, ai.GenerationRequest{
		Operation: "fact_extraction",
		Messages:  []ai.Message{{Role: ai.RoleUser, Content: buildFactExtractionPrompt(text, character, world)}},
		Params: ai.GenerationParams{
			Temperature: &factTemperature,
			MaxTokens:   &factMaxTokens,
		},
	})
	if err != nil {
		e.logger.Debug("Fact extraction skipped", zap.Error(err))
		return nil
	}
	return parseFacts(raw)
}

func parseFacts(raw string) []string {
	arr, ok := extractJSONArray(raw)
	if !ok {
		return nil
	}
	var facts []string
	if err := json.Unmarshal([]byte(arr), &facts); err != nil {
		return nil
	}
	out := facts[:0]
	for _, f := range facts {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
