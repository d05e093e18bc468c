package memory

import (
	"context"
	"time"

	"dreamscribe/internal/model"
)

func (s *Store) GetWorld(_ context.Context, id int64) (*model.World, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.worlds[id]
	if !ok {
		return nil, model.ErrWorldNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *Store) ListWorldsByUser(_ context.Context, userID int64) ([]model.World, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.World, 0)
	for _, w := range s.worlds {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	sortSlice(out, newestFirst(func(i int) (time.Time, int64) { return out[i].UpdatedAt, out[i].ID }))
	return out, nil
}

func (s *Store) CreateWorld(_ context.Context, in model.InsertWorld) (*model.World, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	s.seq.world++
	w := &model.World{
		ID:          s.seq.world,
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Theme:       in.Theme,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.worlds[w.ID] = w
	cp := *w
	return &cp, nil
}

func (s *Store) UpdateWorld(_ context.Context, id int64, patch model.WorldPatch) (*model.World, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.worlds[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Description != nil {
		w.Description = *patch.Description
	}
	if patch.Theme != nil {
		w.Theme = patch.Theme
	}
	w.UpdatedAt = s.timestamp()
	cp := *w
	return &cp, nil
}

func (s *Store) DeleteWorld(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.worlds[id]; !ok {
		return false, nil
	}
	for cid, c := range s.characters {
		if c.WorldID == id {
			s.deleteCharacterLocked(cid)
		}
	}
	for sid, sc := range s.scenes {
		if sc.WorldID == id {
			delete(s.scenes, sid)
		}
	}
	for aid, a := range s.activity {
		if a.WorldID == id {
			delete(s.activity, aid)
		}
	}
	delete(s.worlds, id)
	return true, nil
}
