package memory

import (
	"context"
	"fmt"
	"time"

	"dreamscribe/internal/model"
)

func (s *Store) GetScene(_ context.Context, id int64) (*model.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenes[id]
	if !ok {
		return nil, model.ErrSceneNotFound
	}
	return sc.Clone(), nil
}

func (s *Store) ListScenesByWorld(_ context.Context, worldID int64) ([]model.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Scene, 0)
	for _, sc := range s.scenes {
		if sc.WorldID == worldID {
			out = append(out, *sc.Clone())
		}
	}
	sortSlice(out, newestFirst(func(i int) (time.Time, int64) { return out[i].CreatedAt, out[i].ID }))
	return out, nil
}

func (s *Store) CreateScene(_ context.Context, in model.InsertScene) (*model.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.worlds[in.WorldID]; !ok {
		return nil, model.ErrWorldNotFound
	}
	if err := s.checkSceneCharactersLocked(in.WorldID, in.IncludedCharacters); err != nil {
		return nil, err
	}

	now := s.timestamp()
	s.seq.scene++
	sc := &model.Scene{
		ID:                 s.seq.scene,
		WorldID:            in.WorldID,
		Title:              in.Title,
		Content:            in.Content,
		StyleType:          in.StyleType,
		Tone:               in.Tone,
		IncludedCharacters: append([]int64{}, in.IncludedCharacters...),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.scenes[sc.ID] = sc
	return sc.Clone(), nil
}

func (s *Store) UpdateScene(_ context.Context, id int64, patch model.ScenePatch) (*model.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenes[id]
	if !ok {
		return nil, nil
	}
	if patch.IncludedCharacters != nil {
		if err := s.checkSceneCharactersLocked(sc.WorldID, *patch.IncludedCharacters); err != nil {
			return nil, err
		}
		sc.IncludedCharacters = append([]int64{}, (*patch.IncludedCharacters)...)
	}
	if patch.Title != nil {
		sc.Title = *patch.Title
	}
	if patch.Content != nil {
		sc.Content = *patch.Content
	}
	if patch.StyleType != nil {
		sc.StyleType = patch.StyleType
	}
	if patch.Tone != nil {
		sc.Tone = patch.Tone
	}
	sc.UpdatedAt = s.timestamp()
	return sc.Clone(), nil
}

func (s *Store) DeleteScene(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenes[id]; !ok {
		return false, nil
	}
	delete(s.scenes, id)
	return true, nil
}

// checkSceneCharactersLocked проверяет, что все персонажи сцены существуют и принадлежат миру.
func (s *Store) checkSceneCharactersLocked(worldID int64, ids []int64) error {
	for _, id := range ids {
		c, ok := s.characters[id]
		if !ok || c.WorldID != worldID {
			return fmt.Errorf("%w: character %d does not belong to world %d", model.ErrInvalidInput, id, worldID)
		}
	}
	return nil
}
