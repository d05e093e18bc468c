package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

// CharacterReply - результат генерации ответа персонажа.
type CharacterReply struct {
	Message *model.ChatMessage `json:"message"`
	Mood    model.Mood         `json:"mood"`
}

// ChatService управляет диалогами с персонажами.
type ChatService struct {
	store          repository.Store
	recorder       *ActivityRecorder
	responder      *CharacterResponder
	analyzer       *MoodAnalyzer
	facts          *FactExtractor
	factExtraction bool
	logger         *zap.Logger
}

func NewChatService(
	store repository.Store,
	recorder *ActivityRecorder,
	responder *CharacterResponder,
	analyzer *MoodAnalyzer,
	facts *FactExtractor,
	factExtraction bool,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		store:          store,
		recorder:       recorder,
		responder:      responder,
		analyzer:       analyzer,
		facts:          facts,
		factExtraction: factExtraction,
		logger:         logger.Named("ChatService"),
	}
}

// ListMessages возвращает историю диалога в хронологическом порядке.
func (s *ChatService) ListMessages(ctx context.Context, characterID int64) ([]model.ChatMessage, error) {
	if _, err := s.store.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.store.ListChatMessagesByCharacter(ctx, characterID)
}

// PostMessage сохраняет сообщение. Первое сообщение диалога отмечается в журнале как CHARACTER_CHAT.
func (s *ChatService) PostMessage(ctx context.Context, in model.InsertChatMessage) (*model.ChatMessage, error) {
	character, err := s.store.GetCharacter(ctx, in.CharacterID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.ListChatMessagesByCharacter(ctx, character.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages of character %d: %w", character.ID, err)
	}
	msg, err := s.store.CreateChatMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}
	if len(history) == 0 {
		s.recordChatStarted(ctx, character)
	}
	return msg, nil
}

// GenerateReply генерирует ответ персонажа на текущую историю, определяет его настроение
// и сохраняет сообщение, настроение персонажа и память. Запись настроения и памяти
// выполняется отдельными вызовами; их ошибки только логируются.
func (s *ChatService) GenerateReply(ctx context.Context, userID, characterID int64) (*CharacterReply, error) {
	character, err := s.store.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.ListChatMessagesByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("list messages of character %d: %w", characterID, err)
	}
	log := s.logger.With(zap.Int64("characterID", characterID))

	text := s.responder.GenerateResponse(ctx, character, history)
	mood := s.analyzer.AnalyzeMood(ctx, text)

	moodLabel, intensity, color := mood.Mood, mood.Intensity, mood.DominantColor
	msg, err := s.store.CreateChatMessage(ctx, model.InsertChatMessage{
		CharacterID:   characterID,
		UserID:        userID,
		IsUserMessage: false,
		Content:       text,
		Mood:          &moodLabel,
		MoodIntensity: &intensity,
		MoodColor:     &color,
	})
	if err != nil {
		return nil, fmt.Errorf("store character reply: %w", err)
	}
	if len(history) == 0 {
		s.recordChatStarted(ctx, character)
	}

	if _, err := s.store.UpdateCharacter(ctx, characterID, model.MoodPatch(mood)); err != nil {
		log.Error("Failed to store character mood", zap.Error(err))
	}
	s.rememberExchange(ctx, character, history, text)

	return &CharacterReply{Message: msg, Mood: mood}, nil
}

// rememberExchange увеличивает счетчик взаимодействий, добавляет обмен в историю
// и, если включено, дописывает извлеченные факты.
func (s *ChatService) rememberExchange(ctx context.Context, character *model.Character, history []model.ChatMessage, reply string) {
	lastUser := lastUserMessage(history)

	count := character.Memory.InteractionCount + 1
	patch := model.MemoryPatch{InteractionCount: &count}
	if lastUser != nil {
		conversations := character.Memory.WithConversation(model.ConversationExchange{
			UserMessage:       lastUser.Content,
			CharacterResponse: reply,
			Timestamp:         lastUser.CreatedAt,
		})
		patch.Conversations = &conversations

		if s.factExtraction && s.facts != nil {
			world, _ := s.store.GetWorld(ctx, character.WorldID)
			if extracted := s.facts.ExtractFacts(ctx, lastUser.Content, character, world); len(extracted) > 0 {
				facts := character.Memory.WithFacts(extracted...)
				patch.Facts = &facts
			}
		}
	}

	if _, err := s.store.UpdateCharacterMemory(ctx, character.ID, patch); err != nil {
		s.logger.Error("Failed to update character memory", zap.Int64("characterID", character.ID), zap.Error(err))
	}
}

func (s *ChatService) recordChatStarted(ctx context.Context, c *model.Character) {
	s.recorder.Record(ctx, c.WorldID, model.ActivityCharacterChat, idRef(c.ID), fmt.Sprintf("Chat with '%s'", c.Name))
}

// lastUserMessage возвращает последнее сообщение, если оно от пользователя:
// повторная генерация без новой реплики не должна дублировать обмен в памяти.
func lastUserMessage(history []model.ChatMessage) *model.ChatMessage {
	if n := len(history); n > 0 && history[n-1].IsUserMessage {
		return &history[n-1]
	}
	return nil
}
