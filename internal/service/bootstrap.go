package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
)

// SeedConfig - параметры начального заполнения хранилища.
type SeedConfig struct {
	Username string
	Password string
	// DemoContent добавляет пример мира с персонажем, если у пользователя еще нет миров.
	DemoContent bool
}

// Seed создает демо-пользователя (от его имени работает API) и, по желанию, демо-мир.
// Вызывается один раз при старте.
func (s *Services) Seed(ctx context.Context, cfg SeedConfig, logger *zap.Logger) (*model.User, error) {
	user, err := s.Users.EnsureUser(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("seed demo user: %w", err)
	}
	if !cfg.DemoContent {
		return user, nil
	}

	worlds, err := s.Worlds.List(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("seed: list worlds: %w", err)
	}
	if len(worlds) > 0 {
		return user, nil
	}

	theme := model.ThemeFantasy
	world, err := s.Worlds.Create(ctx, user.ID, CreateWorldInput{
		Name:        "Eldoria",
		Description: "A realm of floating islands bound together by ancient sky-bridges and older grudges.",
		Theme:       &theme,
	})
	if err != nil {
		return nil, fmt.Errorf("seed: create world: %w", err)
	}
	backstory := "Once a royal cartographer, she mapped every bridge in Eldoria before the Sundering."
	if _, err := s.Characters.Create(ctx, CreateCharacterInput{
		WorldID:     world.ID,
		Name:        "Mira",
		Role:        "Wandering cartographer",
		Personality: "Curious, warm, a little sardonic",
		Backstory:   &backstory,
	}); err != nil {
		return nil, fmt.Errorf("seed: create character: %w", err)
	}
	logger.Info("Demo content seeded", zap.Int64("userID", user.ID), zap.Int64("worldID", world.ID))
	return user, nil
}
