package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/pkg/ai"
)

var (
	moodTemperature = 0.2
	moodMaxTokens   = 150
)

var errMoodParse = errors.New("mood response is not valid")

// MoodAnalyzer определяет настроение текста через LLM.
type MoodAnalyzer struct {
	ai     ai.Client
	logger *zap.Logger
}

func NewMoodAnalyzer(client ai.Client, logger *zap.Logger) *MoodAnalyzer {
	return &MoodAnalyzer{ai: client, logger: logger.Named("MoodAnalyzer")}
}

// AnalyzeMood возвращает нормализованное настроение текста или model.NeutralMood() при любой ошибке.
func (a *MoodAnalyzer) AnalyzeMood(ctx context.Context, text string) model.Mood {
	if strings.TrimSpace(text) == "" {
		return model.NeutralMood()
	}

	raw, _, err := a.ai.GenerateText(ctx, ai.GenerationRequest{
		Operation: "mood_analysis",
		Messages:  []ai.Message{{Role: ai.RoleUser, Content: buildMoodPrompt(text)}},
		Params: ai.GenerationParams{
			Temperature:  &moodTemperature,
			MaxTokens:    &moodMaxTokens,
			JSONResponse: true,
		},
	})
	if err != nil {
		a.logger.Warn("Mood analysis failed, using neutral mood", zap.Error(err))
		return model.NeutralMood()
	}

	mood, err := parseMoodResponse(raw)
	if err != nil {
		a.logger.Warn("Mood response could not be parsed, using neutral mood", zap.String("raw", raw), zap.Error(err))
		return model.NeutralMood()
	}
	return mood
}

// moodPayload допускает интенсивность и числом, и строкой ("85").
type moodPayload struct {
	Mood          string          `json:"mood"`
	Intensity     json.RawMessage `json:"intensity"`
	DominantColor string          `json:"dominantColor"`
}

// parseMoodResponse извлекает JSON-объект из ответа модели и нормализует его.
func parseMoodResponse(raw string) (model.Mood, error) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return model.Mood{}, fmt.Errorf("%w: no JSON object found", errMoodParse)
	}
	var p moodPayload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return model.Mood{}, fmt.Errorf("%w: %v", errMoodParse, err)
	}
	if strings.TrimSpace(p.Mood) == "" {
		return model.Mood{}, fmt.Errorf("%w: empty mood label", errMoodParse)
	}

	intensity := model.DefaultMoodIntensity
	if len(p.Intensity) > 0 && string(p.Intensity) != "null" {
		v, err := strconv.ParseFloat(strings.Trim(string(p.Intensity), `"`), 64)
		if err != nil {
			return model.Mood{}, fmt.Errorf("%w: intensity %s", errMoodParse, p.Intensity)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Mood{}, fmt.Errorf("%w: intensity %s is not a finite number", errMoodParse, p.Intensity)
		}
		intensity = v
	}

	return model.Mood{Mood: p.Mood, Intensity: intensity, DominantColor: p.DominantColor}.Normalize(), nil
}
