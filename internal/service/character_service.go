package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

// CreateCharacterInput - данные для создания персонажа.
type CreateCharacterInput struct {
	WorldID     int64
	Name        string
	Role        string
	Appearance  *string
	Personality string
	Backstory   *string
	Memory      model.MemoryPatch
}

// CharacterService управляет персонажами, их памятью и настроением.
type CharacterService struct {
	store    repository.Store
	recorder *ActivityRecorder
	analyzer *MoodAnalyzer
	logger   *zap.Logger
}

func NewCharacterService(store repository.Store, recorder *ActivityRecorder, analyzer *MoodAnalyzer, logger *zap.Logger) *CharacterService {
	return &CharacterService{store: store, recorder: recorder, analyzer: analyzer, logger: logger.Named("CharacterService")}
}

func (s *CharacterService) ListByUser(ctx context.Context, userID int64) ([]model.Character, error) {
	return s.store.ListCharactersByUser(ctx, userID)
}

func (s *CharacterService) ListByWorld(ctx context.Context, worldID int64) ([]model.Character, error) {
	if _, err := s.store.GetWorld(ctx, worldID); err != nil {
		return nil, err
	}
	return s.store.ListCharactersByWorld(ctx, worldID)
}

func (s *CharacterService) Get(ctx context.Context, id int64) (*model.Character, error) {
	return s.store.GetCharacter(ctx, id)
}

func (s *CharacterService) Create(ctx context.Context, in CreateCharacterInput) (*model.Character, error) {
	if err := in.Memory.Validate(); err != nil {
		return nil, err
	}
	c, err := s.store.CreateCharacter(ctx, model.InsertCharacter{
		WorldID:     in.WorldID,
		Name:        in.Name,
		Role:        in.Role,
		Appearance:  in.Appearance,
		Personality: in.Personality,
		Backstory:   in.Backstory,
		Memory:      model.NewCharacterMemory().Merge(in.Memory),
	})
	if err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	s.recorder.Record(ctx, c.WorldID, model.ActivityCharacterCreated, idRef(c.ID), fmt.Sprintf("Character '%s' created", c.Name))
	return c, nil
}

func (s *CharacterService) Update(ctx context.Context, id int64, patch model.CharacterPatch) (*model.Character, error) {
	c, err := s.store.UpdateCharacter(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update character %d: %w", id, err)
	}
	if c == nil {
		return nil, model.ErrCharacterNotFound
	}
	s.recorder.Record(ctx, c.WorldID, model.ActivityCharacterUpdated, idRef(c.ID), fmt.Sprintf("Character '%s' updated", c.Name))
	return c, nil
}

// UpdateMemory сливает патч с памятью персонажа.
func (s *CharacterService) UpdateMemory(ctx context.Context, id int64, patch model.MemoryPatch) (*model.Character, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	c, err := s.store.UpdateCharacterMemory(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update character %d memory: %w", id, err)
	}
	if c == nil {
		return nil, model.ErrCharacterNotFound
	}
	return c, nil
}

// AddFact добавляет факт в память персонажа (без дублей).
func (s *CharacterService) AddFact(ctx context.Context, id int64, fact string) (*model.Character, error) {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return nil, fmt.Errorf("%w: fact must not be empty", model.ErrInvalidInput)
	}
	c, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}
	facts := c.Memory.WithFacts(fact)
	return s.UpdateMemory(ctx, id, model.MemoryPatch{Facts: &facts})
}

func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteCharacter(ctx, id)
	if err != nil {
		return fmt.Errorf("delete character %d: %w", id, err)
	}
	if !ok {
		return model.ErrCharacterNotFound
	}
	return nil
}

// GetMood возвращает текущее настроение персонажа; до первого анализа - нейтральное.
func (s *CharacterService) GetMood(ctx context.Context, id int64) (model.Mood, error) {
	c, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		return model.Mood{}, err
	}
	return characterMood(c), nil
}

// AnalyzeMood анализирует произвольный текст и сохраняет результат как настроение персонажа.
func (s *CharacterService) AnalyzeMood(ctx context.Context, id int64, text string) (*model.Character, model.Mood, error) {
	if _, err := s.store.GetCharacter(ctx, id); err != nil {
		return nil, model.Mood{}, err
	}
	mood := s.analyzer.AnalyzeMood(ctx, text)
	c, err := s.store.UpdateCharacter(ctx, id, model.MoodPatch(mood))
	if err != nil {
		return nil, model.Mood{}, fmt.Errorf("store character %d mood: %w", id, err)
	}
	if c == nil {
		return nil, model.Mood{}, model.ErrCharacterNotFound
	}
	return c, mood, nil
}

func characterMood(c *model.Character) model.Mood {
	if c.CurrentMood == nil || *c.CurrentMood == "" {
		return model.NeutralMood()
	}
	m := model.Mood{Mood: *c.CurrentMood, Intensity: model.DefaultMoodIntensity}
	if c.CurrentMoodIntensity != nil {
		m.Intensity = *c.CurrentMoodIntensity
	}
	if c.CurrentMoodColor != nil {
		m.DominantColor = *c.CurrentMoodColor
	}
	return m.Normalize()
}
