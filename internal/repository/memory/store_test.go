package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dreamscribe/internal/model"
)

// fakeClock продвигается на секунду при каждом обращении.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.store = NewStore(WithClock(clock.Now))
}

func (s *StoreSuite) world(name string) *model.World {
	w, err := s.store.CreateWorld(s.ctx, model.InsertWorld{UserID: 1, Name: name, Description: "d"})
	s.Require().NoError(err)
	return w
}

func (s *StoreSuite) character(worldID int64, name string) *model.Character {
	c, err := s.store.CreateCharacter(s.ctx, model.InsertCharacter{
		WorldID: worldID, Name: name, Role: "hero", Personality: "brave", Memory: model.NewCharacterMemory(),
	})
	s.Require().NoError(err)
	return c
}

func (s *StoreSuite) TestCreate_AssignsSequentialIDs() {
	w1 := s.world("A")
	w2 := s.world("B")
	s.Equal(int64(1), w1.ID)
	s.Equal(int64(2), w2.ID)
	s.False(w1.CreatedAt.IsZero())

	// ID не переиспользуются после удаления.
	ok, err := s.store.DeleteWorld(s.ctx, w2.ID)
	s.Require().NoError(err)
	s.True(ok)
	w3 := s.world("C")
	s.Equal(int64(3), w3.ID)

	// Счетчики независимы по типам.
	c := s.character(w1.ID, "Hero")
	s.Equal(int64(1), c.ID)
}

func (s *StoreSuite) TestGet_NotFound() {
	_, err := s.store.GetWorld(s.ctx, 42)
	s.ErrorIs(err, model.ErrNotFound)
	_, err = s.store.GetCharacter(s.ctx, 42)
	s.ErrorIs(err, model.ErrCharacterNotFound)
	_, err = s.store.GetScene(s.ctx, 42)
	s.ErrorIs(err, model.ErrSceneNotFound)
}

func (s *StoreSuite) TestUpdate_MissingIsSoftFailure() {
	name := "X"
	w, err := s.store.UpdateWorld(s.ctx, 99, model.WorldPatch{Name: &name})
	s.NoError(err)
	s.Nil(w)

	c, err := s.store.UpdateCharacter(s.ctx, 99, model.CharacterPatch{Name: &name})
	s.NoError(err)
	s.Nil(c)

	sc, err := s.store.UpdateScene(s.ctx, 99, model.ScenePatch{Title: &name})
	s.NoError(err)
	s.Nil(sc)

	worlds, err := s.store.ListWorldsByUser(s.ctx, 1)
	s.NoError(err)
	s.Empty(worlds)
}

func (s *StoreSuite) TestUpdate_PartialPatch() {
	w := s.world("Old")
	name := "New"
	updated, err := s.store.UpdateWorld(s.ctx, w.ID, model.WorldPatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("New", updated.Name)
	s.Equal("d", updated.Description)
	s.True(updated.UpdatedAt.After(w.UpdatedAt))
}

func (s *StoreSuite) TestDelete_Missing() {
	ok, err := s.store.DeleteWorld(s.ctx, 5)
	s.NoError(err)
	s.False(ok)
	ok, err = s.store.DeleteScene(s.ctx, 5)
	s.NoError(err)
	s.False(ok)
}

func (s *StoreSuite) TestCreateChild_MissingParent() {
	_, err := s.store.CreateCharacter(s.ctx, model.InsertCharacter{WorldID: 7, Name: "n"})
	s.ErrorIs(err, model.ErrWorldNotFound)
	_, err = s.store.CreateScene(s.ctx, model.InsertScene{WorldID: 7, Title: "t"})
	s.ErrorIs(err, model.ErrWorldNotFound)
	_, err = s.store.CreateActivityLog(s.ctx, model.InsertActivityLog{WorldID: 7})
	s.ErrorIs(err, model.ErrWorldNotFound)
	_, err = s.store.CreateChatMessage(s.ctx, model.InsertChatMessage{CharacterID: 7})
	s.ErrorIs(err, model.ErrCharacterNotFound)
}

func (s *StoreSuite) TestCreateScene_ForeignCharacter() {
	w1 := s.world("A")
	w2 := s.world("B")
	c := s.character(w2.ID, "Stranger")
	_, err := s.store.CreateScene(s.ctx, model.InsertScene{WorldID: w1.ID, Title: "t", IncludedCharacters: []int64{c.ID}})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *StoreSuite) TestOrdering() {
	w := s.world("A")
	c := s.character(w.ID, "Hero")

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.store.CreateScene(s.ctx, model.InsertScene{WorldID: w.ID, Title: title})
		s.Require().NoError(err)
	}
	scenes, err := s.store.ListScenesByWorld(s.ctx, w.ID)
	s.Require().NoError(err)
	s.Require().Len(scenes, 3)
	s.Equal("third", scenes[0].Title)
	s.Equal("first", scenes[2].Title)

	for _, text := range []string{"hi", "hello", "bye"} {
		_, err := s.store.CreateChatMessage(s.ctx, model.InsertChatMessage{CharacterID: c.ID, UserID: 1, IsUserMessage: true, Content: text})
		s.Require().NoError(err)
	}
	msgs, err := s.store.ListChatMessagesByCharacter(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(msgs, 3)
	s.Equal("hi", msgs[0].Content)
	s.Equal("bye", msgs[2].Content)
}

func (s *StoreSuite) TestListActivity_Limit() {
	w := s.world("A")
	for i := 0; i < 5; i++ {
		_, err := s.store.CreateActivityLog(s.ctx, model.InsertActivityLog{WorldID: w.ID, ActivityType: model.ActivityWorldUpdated})
		s.Require().NoError(err)
	}

	all, err := s.store.ListActivityByWorld(s.ctx, w.ID, 0)
	s.Require().NoError(err)
	s.Len(all, 5)
	s.Equal(int64(5), all[0].ID)

	limited, err := s.store.ListActivityByWorld(s.ctx, w.ID, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
	s.Equal(int64(5), limited[0].ID)
	s.Equal(int64(4), limited[1].ID)

	byUser, err := s.store.ListActivityByUser(s.ctx, 1, 3)
	s.Require().NoError(err)
	s.Len(byUser, 3)
}

func (s *StoreSuite) TestUpdateCharacterMemory_Merges() {
	w := s.world("A")
	c := s.character(w.ID, "Hero")

	facts := []string{"likes tea"}
	_, err := s.store.UpdateCharacterMemory(s.ctx, c.ID, model.MemoryPatch{Facts: &facts})
	s.Require().NoError(err)
	count := 2
	updated, err := s.store.UpdateCharacterMemory(s.ctx, c.ID, model.MemoryPatch{InteractionCount: &count})
	s.Require().NoError(err)

	s.Equal([]string{"likes tea"}, updated.Memory.Facts)
	s.Equal(2, updated.Memory.InteractionCount)

	missing, err := s.store.UpdateCharacterMemory(s.ctx, 999, model.MemoryPatch{InteractionCount: &count})
	s.NoError(err)
	s.Nil(missing)
}

func (s *StoreSuite) TestReturnedValuesAreCopies() {
	w := s.world("A")
	c := s.character(w.ID, "Hero")
	c.Memory.Facts = append(c.Memory.Facts, "mutated")
	c.Name = "mutated"

	fresh, err := s.store.GetCharacter(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Hero", fresh.Name)
	s.Empty(fresh.Memory.Facts)
}

func (s *StoreSuite) TestDeleteWorld_Cascades() {
	w := s.world("A")
	other := s.world("B")
	c := s.character(w.ID, "Hero")
	keep := s.character(other.ID, "Keeper")
	_, err := s.store.CreateScene(s.ctx, model.InsertScene{WorldID: w.ID, Title: "t", IncludedCharacters: []int64{c.ID}})
	s.Require().NoError(err)
	_, err = s.store.CreateChatMessage(s.ctx, model.InsertChatMessage{CharacterID: c.ID, Content: "hi"})
	s.Require().NoError(err)
	_, err = s.store.CreateActivityLog(s.ctx, model.InsertActivityLog{WorldID: w.ID, ActivityType: model.ActivityWorldCreated})
	s.Require().NoError(err)

	ok, err := s.store.DeleteWorld(s.ctx, w.ID)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.store.GetCharacter(s.ctx, c.ID)
	s.ErrorIs(err, model.ErrNotFound)
	scenes, _ := s.store.ListScenesByWorld(s.ctx, w.ID)
	s.Empty(scenes)
	msgs, _ := s.store.ListChatMessagesByCharacter(s.ctx, c.ID)
	s.Empty(msgs)
	activity, _ := s.store.ListActivityByWorld(s.ctx, w.ID, 0)
	s.Empty(activity)

	_, err = s.store.GetCharacter(s.ctx, keep.ID)
	s.NoError(err)
}

func (s *StoreSuite) TestDeleteCharacter_CascadesMessagesAndSceneRefs() {
	w := s.world("A")
	c := s.character(w.ID, "Hero")
	other := s.character(w.ID, "Sidekick")
	sc, err := s.store.CreateScene(s.ctx, model.InsertScene{WorldID: w.ID, Title: "t", IncludedCharacters: []int64{c.ID, other.ID}})
	s.Require().NoError(err)
	_, err = s.store.CreateChatMessage(s.ctx, model.InsertChatMessage{CharacterID: c.ID, Content: "hi"})
	s.Require().NoError(err)

	ok, err := s.store.DeleteCharacter(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(ok)

	msgs, _ := s.store.ListChatMessagesByCharacter(s.ctx, c.ID)
	s.Empty(msgs)
	scene, err := s.store.GetScene(s.ctx, sc.ID)
	s.Require().NoError(err)
	s.Equal([]int64{other.ID}, scene.IncludedCharacters)
}

func (s *StoreSuite) TestUsers() {
	u, err := s.store.CreateUser(s.ctx, model.InsertUser{Username: "demo", PasswordHash: "h"})
	s.Require().NoError(err)
	s.Equal(int64(1), u.ID)

	_, err = s.store.CreateUser(s.ctx, model.InsertUser{Username: "Demo"})
	s.ErrorIs(err, model.ErrUserAlreadyExists)

	found, err := s.store.GetUserByUsername(s.ctx, "demo")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	_, err = s.store.GetUser(s.ctx, 9)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StoreSuite) TestListCharactersByUser() {
	mine := s.world("Mine")
	theirs, err := s.store.CreateWorld(s.ctx, model.InsertWorld{UserID: 2, Name: "Theirs"})
	s.Require().NoError(err)
	s.character(mine.ID, "A")
	s.character(theirs.ID, "B")
	s.character(mine.ID, "C")

	chars, err := s.store.ListCharactersByUser(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(chars, 2)
	s.Equal("C", chars[0].Name)
}

func (s *StoreSuite) TestReset() {
	s.world("A")
	s.store.Reset()
	worlds, err := s.store.ListWorldsByUser(s.ctx, 1)
	s.NoError(err)
	s.Empty(worlds)
	s.Equal(int64(1), s.world("B").ID)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	w, err := store.CreateWorld(ctx, model.InsertWorld{UserID: 1, Name: "A"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateActivityLog(ctx, model.InsertActivityLog{WorldID: w.ID, ActivityType: model.ActivityWorldUpdated})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	logs, err := store.ListActivityByWorld(ctx, w.ID, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 50)
	seen := make(map[int64]bool)
	for _, l := range logs {
		assert.False(t, seen[l.ID])
		seen[l.ID] = true
	}
}
