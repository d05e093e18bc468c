package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dreamscribe/internal/model"
	"dreamscribe/pkg/ai"
	"dreamscribe/pkg/ai/mocks"
)

func newChatService(f *fixture, client ai.Client, factExtraction bool) *ChatService {
	logger := nopLogger()
	recorder := NewActivityRecorder(f.store, logger)
	return NewChatService(
		f.store,
		recorder,
		NewCharacterResponder(client, f.store, logger),
		NewMoodAnalyzer(client, logger),
		NewFactExtractor(client, logger),
		factExtraction,
		logger,
	)
}

func countActivity(t *testing.T, f *fixture, typ model.ActivityType) int {
	t.Helper()
	logs, err := f.store.ListActivityByWorld(f.ctx, f.world.ID, 0)
	require.NoError(t, err)
	n := 0
	for _, l := range logs {
		if l.ActivityType == typ {
			n++
		}
	}
	return n
}

func TestChatService_PostMessage_FirstMessageRecordsChat(t *testing.T) {
	f := newFixture(t)
	svc := newChatService(f, ai.NewDisabledClient(), false)

	for _, text := range []string{"hello", "are you there?"} {
		_, err := svc.PostMessage(f.ctx, model.InsertChatMessage{CharacterID: f.character.ID, UserID: 1, IsUserMessage: true, Content: text})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, countActivity(t, f, model.ActivityCharacterChat))

	msgs, err := svc.ListMessages(f.ctx, f.character.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestChatService_PostMessage_UnknownCharacter(t *testing.T) {
	f := newFixture(t)
	svc := newChatService(f, ai.NewDisabledClient(), false)

	_, err := svc.PostMessage(f.ctx, model.InsertChatMessage{CharacterID: 404, Content: "hi"})
	assert.ErrorIs(t, err, model.ErrCharacterNotFound)

	_, err = svc.ListMessages(f.ctx, 404)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestChatService_GenerateReply_PersistsMood(t *testing.T) {
	f := newFixture(t)
	client := mocks.NewMockClient(t)
	client.On("GenerateText", mock.Anything, operation("character_response")).
		Return("What a wonderful day!", ai.UsageInfo{}, nil).Once()
	client.On("GenerateText", mock.Anything, operation("mood_analysis")).
		Return("```json\n{\"mood\":\"happy\",\"intensity\":0.8,\"dominantColor\":\"#FFD700\"}\n```", ai.UsageInfo{}, nil).Once()
	client.On("GenerateText", mock.Anything, operation("fact_extraction")).
		Return(`["User's name is Alex"]`, ai.UsageInfo{}, nil).Once()

	svc := newChatService(f, client, true)
	_, err := svc.PostMessage(f.ctx, model.InsertChatMessage{CharacterID: f.character.ID, UserID: 1, IsUserMessage: true, Content: "I'm Alex!"})
	require.NoError(t, err)

	reply, err := svc.GenerateReply(f.ctx, 1, f.character.ID)
	require.NoError(t, err)

	assert.Equal(t, "What a wonderful day!", reply.Message.Content)
	assert.False(t, reply.Message.IsUserMessage)
	assert.Equal(t, model.Mood{Mood: "happy", Intensity: 0.8, DominantColor: "#FFD700"}, reply.Mood)
	require.NotNil(t, reply.Message.Mood)
	assert.Equal(t, "happy", *reply.Message.Mood)
	assert.Equal(t, "#FFD700", *reply.Message.MoodColor)

	c, err := f.store.GetCharacter(f.ctx, f.character.ID)
	require.NoError(t, err)
	require.NotNil(t, c.CurrentMood)
	assert.Equal(t, "happy", *c.CurrentMood)
	assert.InDelta(t, 0.8, *c.CurrentMoodIntensity, 1e-9)
	assert.Equal(t, "#FFD700", *c.CurrentMoodColor)

	assert.Equal(t, 1, c.Memory.InteractionCount)
	assert.Equal(t, []string{"User's name is Alex"}, c.Memory.Facts)
	require.Len(t, c.Memory.Conversations, 1)
	assert.Equal(t, "I'm Alex!", c.Memory.Conversations[0].UserMessage)
	assert.Equal(t, "What a wonderful day!", c.Memory.Conversations[0].CharacterResponse)

	// CHARACTER_CHAT записан только при первом сообщении пользователя.
	assert.Equal(t, 1, countActivity(t, f, model.ActivityCharacterChat))
}

func TestChatService_GenerateReply_NoCredentials(t *testing.T) {
	f := newFixture(t)
	svc := newChatService(f, ai.NewDisabledClient(), true)

	reply, err := svc.GenerateReply(f.ctx, 1, f.character.ID)
	require.NoError(t, err)

	assert.Equal(t, CharacterFallbackResponse, reply.Message.Content)
	assert.Equal(t, model.NeutralMood(), reply.Mood)
	// Ответ открыл диалог.
	assert.Equal(t, 1, countActivity(t, f, model.ActivityCharacterChat))

	c, err := f.store.GetCharacter(f.ctx, f.character.ID)
	require.NoError(t, err)
	assert.Equal(t, "neutral", *c.CurrentMood)
	assert.Equal(t, 1, c.Memory.InteractionCount)
	assert.Empty(t, c.Memory.Conversations)
}

func TestChatService_GenerateReply_UnknownCharacter(t *testing.T) {
	f := newFixture(t)
	client := mocks.NewMockClient(t)
	svc := newChatService(f, client, false)

	_, err := svc.GenerateReply(f.ctx, 1, 999)
	assert.ErrorIs(t, err, model.ErrCharacterNotFound)
}
