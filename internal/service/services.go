package service

import (
	"go.uber.org/zap"

	"dreamscribe/internal/repository"
	"dreamscribe/pkg/ai"
)

// Options - настройки сервисного слоя.
type Options struct {
	FactExtraction bool
}

// Services объединяет все сервисы приложения.
type Services struct {
	Worlds     *WorldService
	Characters *CharacterService
	Scenes     *SceneService
	Chat       *ChatService
	Users      *UserService
	Analyzer   *MoodAnalyzer
}

// NewServices собирает сервисы поверх хранилища и AI-клиента.
func NewServices(store repository.Store, client ai.Client, opts Options, logger *zap.Logger) *Services {
	recorder := NewActivityRecorder(store, logger)
	analyzer := NewMoodAnalyzer(client, logger)
	responder := NewCharacterResponder(client, store, logger)
	facts := NewFactExtractor(client, logger)

	return &Services{
		Worlds:     NewWorldService(store, recorder, logger),
		Characters: NewCharacterService(store, recorder, analyzer, logger),
		Scenes:     NewSceneService(store, recorder, client, logger),
		Chat:       NewChatService(store, recorder, responder, analyzer, facts, opts.FactExtraction, logger),
		Users:      NewUserService(store, logger),
		Analyzer:   analyzer,
	}
}
