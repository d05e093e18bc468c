package memory

import (
	"context"
	"time"

	"dreamscribe/internal/model"
)

func (s *Store) ListChatMessagesByCharacter(_ context.Context, characterID int64) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ChatMessage, 0)
	for _, m := range s.messages {
		if m.CharacterID == characterID {
			out = append(out, *m)
		}
	}
	sortSlice(out, oldestFirst(func(i int) (time.Time, int64) { return out[i].CreatedAt, out[i].ID }))
	return out, nil
}

func (s *Store) CreateChatMessage(_ context.Context, in model.InsertChatMessage) (*model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[in.CharacterID]; !ok {
		return nil, model.ErrCharacterNotFound
	}

	s.seq.message++
	m := &model.ChatMessage{
		ID:            s.seq.message,
		CharacterID:   in.CharacterID,
		UserID:        in.UserID,
		IsUserMessage: in.IsUserMessage,
		Content:       in.Content,
		Mood:          in.Mood,
		MoodIntensity: in.MoodIntensity,
		MoodColor:     in.MoodColor,
		CreatedAt:     s.timestamp(),
	}
	s.messages[m.ID] = m
	cp := *m
	return &cp, nil
}
