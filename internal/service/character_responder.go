package service

import (
	"context"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
	"dreamscribe/pkg/ai"
)

// CharacterFallbackResponse возвращается вместо ответа модели при любой ошибке генерации.
const CharacterFallbackResponse = "I'm sorry, I seem to be having trouble forming a response right now. Could we try again in a moment?"

// historyWindow - сколько последних сообщений уходит в модель.
const historyWindow = 10

// openingUserTurn подставляется, если диалог еще пуст: модели нужна хотя бы одна реплика пользователя.
const openingUserTurn = "(The user approaches you and waits for you to speak.)"

var (
	characterTemperature = 0.7
	characterTopP        = 0.95
	characterMaxTokens   = 800
)

// CharacterResponder генерирует реплики персонажа.
type CharacterResponder struct {
	ai     ai.Client
	worlds repository.WorldRepository
	logger *zap.Logger
}

func NewCharacterResponder(client ai.Client, worlds repository.WorldRepository, logger *zap.Logger) *CharacterResponder {
	return &CharacterResponder{ai: client, worlds: worlds, logger: logger.Named("CharacterResponder")}
}

// GenerateResponse возвращает ответ персонажа на историю диалога (в хронологическом порядке).
// Никогда не возвращает ошибку: при сбое отдает CharacterFallbackResponse.
func (r *CharacterResponder) GenerateResponse(ctx context.Context, character *model.Character, history []model.ChatMessage) string {
	log := r.logger.With(zap.Int64("characterID", character.ID))

	var world *model.World
	if r.worlds != nil {
		w, err := r.worlds.GetWorld(ctx, character.WorldID)
		if err != nil {
			log.Warn("World lookup failed, prompt will omit world context", zap.Error(err))
		} else {
			world = w
		}
	}

	req := ai.GenerationRequest{
		Operation:    "character_response",
		SystemPrompt: buildCharacterSystemPrompt(character, world),
		Messages:     historyToMessages(history),
		Params: ai.GenerationParams{
			Temperature: &characterTemperature,
			TopP:        &characterTopP,
			MaxTokens:   &characterMaxTokens,
		},
	}

	text, usage, err := r.ai.GenerateText(ctx, req)
	if err != nil {
		log.Error("Character response generation failed, using fallback", zap.Error(err))
		return CharacterFallbackResponse
	}
	log.Debug("Character response generated", zap.Int("totalTokens", usage.TotalTokens))
	return text
}

// historyToMessages берет последние historyWindow сообщений и превращает их в реплики диалога.
func historyToMessages(history []model.ChatMessage) []ai.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	msgs := make([]ai.Message, 0, len(history)+1)
	for _, m := range history {
		role := ai.RoleAssistant
		if m.IsUserMessage {
			role = ai.RoleUser
		}
		msgs = append(msgs, ai.Message{Role: role, Content: m.Content})
	}
	if len(msgs) == 0 {
		msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: openingUserTurn})
	}
	return msgs
}
