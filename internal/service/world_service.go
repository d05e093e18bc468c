package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

const (
	dashboardCharacters = 5
	dashboardActivity   = 10
)

// CreateWorldInput - данные для создания мира.
type CreateWorldInput struct {
	Name        string
	Description string
	Theme       *string
}

// Dashboard - сводка для главной страницы пользователя.
type Dashboard struct {
	Worlds           []model.World       `json:"worlds"`
	RecentCharacters []model.Character   `json:"recentCharacters"`
	RecentActivity   []model.ActivityLog `json:"recentActivity"`
}

// WorldService управляет мирами и их журналом активности.
type WorldService struct {
	store    repository.Store
	recorder *ActivityRecorder
	logger   *zap.Logger
}

func NewWorldService(store repository.Store, recorder *ActivityRecorder, logger *zap.Logger) *WorldService {
	return &WorldService{store: store, recorder: recorder, logger: logger.Named("WorldService")}
}

func (s *WorldService) List(ctx context.Context, userID int64) ([]model.World, error) {
	return s.store.ListWorldsByUser(ctx, userID)
}

func (s *WorldService) Get(ctx context.Context, id int64) (*model.World, error) {
	return s.store.GetWorld(ctx, id)
}

func (s *WorldService) Create(ctx context.Context, userID int64, in CreateWorldInput) (*model.World, error) {
	w, err := s.store.CreateWorld(ctx, model.InsertWorld{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Theme:       in.Theme,
	})
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	s.recorder.Record(ctx, w.ID, model.ActivityWorldCreated, idRef(w.ID), fmt.Sprintf("World '%s' created", w.Name))
	s.logger.Info("World created", zap.Int64("worldID", w.ID), zap.Int64("userID", userID))
	return w, nil
}

func (s *WorldService) Update(ctx context.Context, id int64, patch model.WorldPatch) (*model.World, error) {
	w, err := s.store.UpdateWorld(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update world %d: %w", id, err)
	}
	if w == nil {
		return nil, model.ErrWorldNotFound
	}
	s.recorder.Record(ctx, w.ID, model.ActivityWorldUpdated, idRef(w.ID), fmt.Sprintf("World '%s' updated", w.Name))
	return w, nil
}

func (s *WorldService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteWorld(ctx, id)
	if err != nil {
		return fmt.Errorf("delete world %d: %w", id, err)
	}
	if !ok {
		return model.ErrWorldNotFound
	}
	s.logger.Info("World deleted", zap.Int64("worldID", id))
	return nil
}

// ListActivity возвращает журнал мира, новые записи первыми.
func (s *WorldService) ListActivity(ctx context.Context, worldID int64, limit int) ([]model.ActivityLog, error) {
	if _, err := s.store.GetWorld(ctx, worldID); err != nil {
		return nil, err
	}
	return s.store.ListActivityByWorld(ctx, worldID, limit)
}

func (s *WorldService) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	worlds, err := s.store.ListWorldsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard worlds: %w", err)
	}
	characters, err := s.store.ListCharactersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard characters: %w", err)
	}
	if len(characters) > dashboardCharacters {
		characters = characters[:dashboardCharacters]
	}
	activity, err := s.store.ListActivityByUser(ctx, userID, dashboardActivity)
	if err != nil {
		return nil, fmt.Errorf("dashboard activity: %w", err)
	}
	return &Dashboard{Worlds: worlds, RecentCharacters: characters, RecentActivity: activity}, nil
}
