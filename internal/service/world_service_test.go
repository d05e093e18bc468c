package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository/memory"
	"dreamscribe/pkg/ai"
	"dreamscribe/pkg/ai/mocks"
)

func TestWorldService_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	services := NewServices(store, ai.NewDisabledClient(), Options{}, nopLogger())

	w, err := services.Worlds.Create(ctx, 1, CreateWorldInput{Name: "Eldoria", Description: "d"})
	require.NoError(t, err)

	name := "Eldoria Reborn"
	_, err = services.Worlds.Update(ctx, w.ID, model.WorldPatch{Name: &name})
	require.NoError(t, err)

	c, err := services.Characters.Create(ctx, CreateCharacterInput{WorldID: w.ID, Name: "Hero", Role: "r", Personality: "p"})
	require.NoError(t, err)
	_, err = services.Characters.Update(ctx, c.ID, model.CharacterPatch{Name: &name})
	require.NoError(t, err)

	logs, err := services.Worlds.ListActivity(ctx, w.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, model.ActivityCharacterUpdated, logs[0].ActivityType)
	assert.Equal(t, model.ActivityCharacterCreated, logs[1].ActivityType)
	assert.Equal(t, model.ActivityWorldUpdated, logs[2].ActivityType)
	assert.Equal(t, model.ActivityWorldCreated, logs[3].ActivityType)
	assert.Equal(t, c.ID, *logs[1].EntityID)
}

func TestWorldService_NotFound(t *testing.T) {
	ctx := context.Background()
	services := NewServices(memory.NewStore(), ai.NewDisabledClient(), Options{}, nopLogger())

	name := "x"
	_, err := services.Worlds.Update(ctx, 7, model.WorldPatch{Name: &name})
	assert.ErrorIs(t, err, model.ErrWorldNotFound)
	assert.ErrorIs(t, services.Worlds.Delete(ctx, 7), model.ErrWorldNotFound)
	_, err = services.Worlds.ListActivity(ctx, 7, 0)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = services.Characters.Create(ctx, CreateCharacterInput{WorldID: 7, Name: "n"})
	assert.ErrorIs(t, err, model.ErrWorldNotFound)
}

func TestWorldService_Dashboard(t *testing.T) {
	ctx := context.Background()
	services := NewServices(memory.NewStore(), ai.NewDisabledClient(), Options{}, nopLogger())

	w, err := services.Worlds.Create(ctx, 1, CreateWorldInput{Name: "A", Description: "d"})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := services.Characters.Create(ctx, CreateCharacterInput{WorldID: w.ID, Name: "c", Role: "r", Personality: "p"})
		require.NoError(t, err)
	}

	d, err := services.Worlds.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, d.Worlds, 1)
	assert.Len(t, d.RecentCharacters, 5)
	assert.Len(t, d.RecentActivity, 8)

	empty, err := services.Worlds.Dashboard(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Worlds)
}

func TestCharacterService_MemoryAndMood(t *testing.T) {
	f := newFixture(t)
	client := mocks.NewMockClient(t)
	client.On("GenerateText", mock.Anything, operation("mood_analysis")).
		Return(`{"mood":"fearful","intensity":70}`, ai.UsageInfo{}, nil).Once()
	services := NewServices(f.store, client, Options{}, nopLogger())

	mood, err := services.Characters.GetMood(f.ctx, f.character.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NeutralMood(), mood)

	c, mood, err := services.Characters.AnalyzeMood(f.ctx, f.character.ID, "Something moves in the dark...")
	require.NoError(t, err)
	assert.Equal(t, "fearful", mood.Mood)
	assert.InDelta(t, 0.7, mood.Intensity, 1e-9)
	assert.Equal(t, "#800080", *c.CurrentMoodColor)

	_, err = services.Characters.AddFact(f.ctx, f.character.ID, "Likes tea")
	require.NoError(t, err)
	count := 3
	c, err = services.Characters.UpdateMemory(f.ctx, f.character.ID, model.MemoryPatch{InteractionCount: &count})
	require.NoError(t, err)
	assert.Equal(t, []string{"Likes tea"}, c.Memory.Facts)
	assert.Equal(t, 3, c.Memory.InteractionCount)

	neg := -1
	_, err = services.Characters.UpdateMemory(f.ctx, f.character.ID, model.MemoryPatch{InteractionCount: &neg})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = services.Characters.UpdateMemory(f.ctx, 999, model.MemoryPatch{InteractionCount: &count})
	assert.ErrorIs(t, err, model.ErrCharacterNotFound)
	_, err = services.Characters.AddFact(f.ctx, f.character.ID, "  ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
