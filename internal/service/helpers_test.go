package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository/memory"
	"dreamscribe/pkg/ai"
)

func operation(op string) interface{} {
	return mock.MatchedBy(func(r ai.GenerationRequest) bool { return r.Operation == op })
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	world     *model.World
	character *model.Character
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	w, err := store.CreateWorld(ctx, model.InsertWorld{UserID: 1, Name: "Eldoria", Description: "Floating islands"})
	require.NoError(t, err)
	c, err := store.CreateCharacter(ctx, model.InsertCharacter{
		WorldID: w.ID, Name: "Mira", Role: "cartographer", Personality: "curious", Memory: model.NewCharacterMemory(),
	})
	require.NoError(t, err)
	return &fixture{ctx: ctx, store: store, world: w, character: c}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
