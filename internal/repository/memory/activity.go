package memory

import (
	"context"
	"time"

	"dreamscribe/internal/model"
)

func (s *Store) CreateActivityLog(_ context.Context, in model.InsertActivityLog) (*model.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.worlds[in.WorldID]; !ok {
		return nil, model.ErrWorldNotFound
	}

	s.seq.activity++
	a := &model.ActivityLog{
		ID:           s.seq.activity,
		WorldID:      in.WorldID,
		ActivityType: in.ActivityType,
		Description:  in.Description,
		CreatedAt:    s.timestamp(),
	}
	if in.EntityID != nil {
		id := *in.EntityID
		a.EntityID = &id
	}
	s.activity[a.ID] = a
	cp := *a
	return &cp, nil
}

func (s *Store) ListActivityByWorld(_ context.Context, worldID int64, limit int) ([]model.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listActivityLocked(func(a *model.ActivityLog) bool { return a.WorldID == worldID }, limit), nil
}

func (s *Store) ListActivityByUser(_ context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listActivityLocked(func(a *model.ActivityLog) bool {
		w, ok := s.worlds[a.WorldID]
		return ok && w.UserID == userID
	}, limit), nil
}

func (s *Store) listActivityLocked(match func(*model.ActivityLog) bool, limit int) []model.ActivityLog {
	out := make([]model.ActivityLog, 0)
	for _, a := range s.activity {
		if match(a) {
			out = append(out, *a)
		}
	}
	sortSlice(out, newestFirst(func(i int) (time.Time, int64) { return out[i].CreatedAt, out[i].ID }))
	return applyLimit(out, limit)
}
