package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
	"dreamscribe/pkg/ai"
)

// Длина генерируемой сцены.
const (
	SceneLengthShort  = "short"
	SceneLengthMedium = "medium"
	SceneLengthLong   = "long"
)

// SceneFallbackContent сохраняется вместо текста сцены, если генерация не удалась.
const SceneFallbackContent = "The story could not be written right now. Please try generating this scene again later."

var (
	sceneTemperature = 0.8
	sceneMaxTokens   = 2048
)

// CreateSceneInput - данные для создания сцены вручную.
type CreateSceneInput struct {
	WorldID            int64
	Title              string
	Content            string
	StyleType          *string
	Tone               *string
	IncludedCharacters []int64
}

// SceneGenerationInput - параметры генерации сцены моделью.
type SceneGenerationInput struct {
	WorldID            int64
	Title              string
	Prompt             string
	StyleType          *string
	Tone               *string
	Length             string
	IncludedCharacters []int64
}

// SceneService управляет сценами.
type SceneService struct {
	store    repository.Store
	recorder *ActivityRecorder
	ai       ai.Client
	logger   *zap.Logger
}

func NewSceneService(store repository.Store, recorder *ActivityRecorder, client ai.Client, logger *zap.Logger) *SceneService {
	return &SceneService{store: store, recorder: recorder, ai: client, logger: logger.Named("SceneService")}
}

func (s *SceneService) ListByWorld(ctx context.Context, worldID int64) ([]model.Scene, error) {
	if _, err := s.store.GetWorld(ctx, worldID); err != nil {
		return nil, err
	}
	return s.store.ListScenesByWorld(ctx, worldID)
}

func (s *SceneService) Get(ctx context.Context, id int64) (*model.Scene, error) {
	return s.store.GetScene(ctx, id)
}

func (s *SceneService) Create(ctx context.Context, in CreateSceneInput) (*model.Scene, error) {
	sc, err := s.store.CreateScene(ctx, model.InsertScene{
		WorldID:            in.WorldID,
		Title:              in.Title,
		Content:            in.Content,
		StyleType:          in.StyleType,
		Tone:               in.Tone,
		IncludedCharacters: in.IncludedCharacters,
	})
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	s.recorder.Record(ctx, sc.WorldID, model.ActivitySceneCreated, idRef(sc.ID), fmt.Sprintf("Scene '%s' created", sc.Title))
	return sc, nil
}

func (s *SceneService) Update(ctx context.Context, id int64, patch model.ScenePatch) (*model.Scene, error) {
	sc, err := s.store.UpdateScene(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update scene %d: %w", id, err)
	}
	if sc == nil {
		return nil, model.ErrSceneNotFound
	}
	s.recorder.Record(ctx, sc.WorldID, model.ActivitySceneUpdated, idRef(sc.ID), fmt.Sprintf("Scene '%s' updated", sc.Title))
	return sc, nil
}

func (s *SceneService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteScene(ctx, id)
	if err != nil {
		return fmt.Errorf("delete scene %d: %w", id, err)
	}
	if !ok {
		return model.ErrSceneNotFound
	}
	return nil
}

// Generate пишет сцену моделью и сохраняет ее. При ошибке модели сохраняется SceneFallbackContent.
func (s *SceneService) Generate(ctx context.Context, in SceneGenerationInput) (*model.Scene, error) {
	world, err := s.store.GetWorld(ctx, in.WorldID)
	if err != nil {
		return nil, err
	}
	characters := make([]model.Character, 0, len(in.IncludedCharacters))
	for _, id := range in.IncludedCharacters {
		c, err := s.store.GetCharacter(ctx, id)
		if err != nil || c.WorldID != world.ID {
			return nil, fmt.Errorf("%w: character %d does not belong to world %d", model.ErrInvalidInput, id, world.ID)
		}
		characters = append(characters, *c)
	}

	content, _, err := s.ai.GenerateText(ctx, ai.GenerationRequest{
		Operation: "scene_generation",
		Messages:  []ai.Message{{Role: ai.RoleUser, Content: buildScenePrompt(world, characters, in)}},
		Params: ai.GenerationParams{
			Temperature: &sceneTemperature,
			MaxTokens:   &sceneMaxTokens,
		},
	})
	if err != nil {
		s.logger.Error("Scene generation failed, storing fallback content", zap.Int64("worldID", world.ID), zap.Error(err))
		content = SceneFallbackContent
	}

	sc, err := s.store.CreateScene(ctx, model.InsertScene{
		WorldID:            world.ID,
		Title:              in.Title,
		Content:            content,
		StyleType:          in.StyleType,
		Tone:               in.Tone,
		IncludedCharacters: in.IncludedCharacters,
	})
	if err != nil {
		return nil, fmt.Errorf("create generated scene: %w", err)
	}
	s.recorder.Record(ctx, sc.WorldID, model.ActivitySceneCreated, idRef(sc.ID), fmt.Sprintf("Scene '%s' generated", sc.Title))
	return sc, nil
}
