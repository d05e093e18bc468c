package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository/memory"
	"dreamscribe/pkg/ai"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewStore(), nopLogger())
	svc.cost = bcrypt.MinCost

	u, err := svc.Register(ctx, "alex", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	_, err = svc.Register(ctx, "alex", "other")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)

	got, err := svc.Authenticate(ctx, "alex", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alex", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "x")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	again, err := svc.EnsureUser(ctx, "alex", "ignored")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestServices_Seed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	services := NewServices(store, ai.NewDisabledClient(), Options{}, nopLogger())
	services.Users.cost = bcrypt.MinCost

	user, err := services.Seed(ctx, SeedConfig{Username: "demo", Password: "demo", DemoContent: true}, nopLogger())
	require.NoError(t, err)

	worlds, err := services.Worlds.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, worlds, 1)

	// Повторный запуск не дублирует данные.
	again, err := services.Seed(ctx, SeedConfig{Username: "demo", Password: "demo", DemoContent: true}, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	worlds, err = services.Worlds.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, worlds, 1)
}
