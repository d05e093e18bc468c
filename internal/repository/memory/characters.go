package memory

import (
	"context"
	"slices"
	"time"

	"dreamscribe/internal/model"
)

func (s *Store) GetCharacter(_ context.Context, id int64) (*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[id]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	return c.Clone(), nil
}

func (s *Store) ListCharactersByWorld(_ context.Context, worldID int64) ([]model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Character, 0)
	for _, c := range s.characters {
		if c.WorldID == worldID {
			out = append(out, *c.Clone())
		}
	}
	sortSlice(out, oldestFirst(func(i int) (time.Time, int64) { return out[i].CreatedAt, out[i].ID }))
	return out, nil
}

func (s *Store) ListCharactersByUser(_ context.Context, userID int64) ([]model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Character, 0)
	for _, c := range s.characters {
		if w, ok := s.worlds[c.WorldID]; ok && w.UserID == userID {
			out = append(out, *c.Clone())
		}
	}
	sortSlice(out, newestFirst(func(i int) (time.Time, int64) { return out[i].UpdatedAt, out[i].ID }))
	return out, nil
}

func (s *Store) CreateCharacter(_ context.Context, in model.InsertCharacter) (*model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.worlds[in.WorldID]; !ok {
		return nil, model.ErrWorldNotFound
	}

	now := s.timestamp()
	s.seq.character++
	c := &model.Character{
		ID:          s.seq.character,
		WorldID:     in.WorldID,
		Name:        in.Name,
		Role:        in.Role,
		Appearance:  in.Appearance,
		Personality: in.Personality,
		Backstory:   in.Backstory,
		Memory:      in.Memory.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.characters[c.ID] = c
	return c.Clone(), nil
}

func (s *Store) UpdateCharacter(_ context.Context, id int64, patch model.CharacterPatch) (*model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.characters[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Role != nil {
		c.Role = *patch.Role
	}
	if patch.Appearance != nil {
		c.Appearance = patch.Appearance
	}
	if patch.Personality != nil {
		c.Personality = *patch.Personality
	}
	if patch.Backstory != nil {
		c.Backstory = patch.Backstory
	}
	if patch.CurrentMood != nil {
		c.CurrentMood = patch.CurrentMood
	}
	if patch.CurrentMoodIntensity != nil {
		c.CurrentMoodIntensity = patch.CurrentMoodIntensity
	}
	if patch.CurrentMoodColor != nil {
		c.CurrentMoodColor = patch.CurrentMoodColor
	}
	c.UpdatedAt = s.timestamp()
	return c.Clone(), nil
}

func (s *Store) UpdateCharacterMemory(_ context.Context, id int64, patch model.MemoryPatch) (*model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.characters[id]
	if !ok {
		return nil, nil
	}
	c.Memory = c.Memory.Merge(patch)
	c.UpdatedAt = s.timestamp()
	return c.Clone(), nil
}

func (s *Store) DeleteCharacter(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[id]; !ok {
		return false, nil
	}
	s.deleteCharacterLocked(id)
	return true, nil
}

// deleteCharacterLocked удаляет персонажа, его сообщения и ссылки на него из сцен.
func (s *Store) deleteCharacterLocked(id int64) {
	for mid, m := range s.messages {
		if m.CharacterID == id {
			delete(s.messages, mid)
		}
	}
	for _, sc := range s.scenes {
		sc.IncludedCharacters = slices.DeleteFunc(sc.IncludedCharacters, func(cid int64) bool { return cid == id })
	}
	delete(s.characters, id)
}
