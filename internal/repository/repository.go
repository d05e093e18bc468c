package repository

import (
	"context"

	"dreamscribe/internal/model"
)

// UserRepository определяет методы для работы с пользователями.
type UserRepository interface {
	// CreateUser создает пользователя. Имя уникально: при повторе возвращает model.ErrUserAlreadyExists.
	CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// WorldRepository определяет методы для работы с мирами.
type WorldRepository interface {
	GetWorld(ctx context.Context, id int64) (*model.World, error)
	// ListWorldsByUser возвращает миры пользователя, сначала недавно обновленные.
	ListWorldsByUser(ctx context.Context, userID int64) ([]model.World, error)
	CreateWorld(ctx context.Context, in model.InsertWorld) (*model.World, error)
	// UpdateWorld применяет патч. Для несуществующего ID возвращает (nil, nil).
	UpdateWorld(ctx context.Context, id int64, patch model.WorldPatch) (*model.World, error)
	// DeleteWorld удаляет мир вместе с персонажами, сценами, журналом и сообщениями.
	DeleteWorld(ctx context.Context, id int64) (bool, error)
}

// CharacterRepository определяет методы для работы с персонажами.
type CharacterRepository interface {
	GetCharacter(ctx context.Context, id int64) (*model.Character, error)
	ListCharactersByWorld(ctx context.Context, worldID int64) ([]model.Character, error)
	// ListCharactersByUser возвращает персонажей всех миров пользователя, сначала недавно обновленные.
	ListCharactersByUser(ctx context.Context, userID int64) ([]model.Character, error)
	// CreateCharacter возвращает model.ErrWorldNotFound, если мира нет.
	CreateCharacter(ctx context.Context, in model.InsertCharacter) (*model.Character, error)
	UpdateCharacter(ctx context.Context, id int64, patch model.CharacterPatch) (*model.Character, error)
	// UpdateCharacterMemory сливает патч с текущей памятью персонажа. Для несуществующего ID возвращает (nil, nil).
	UpdateCharacterMemory(ctx context.Context, id int64, patch model.MemoryPatch) (*model.Character, error)
	DeleteCharacter(ctx context.Context, id int64) (bool, error)
}

// SceneRepository определяет методы для работы со сценами.
type SceneRepository interface {
	GetScene(ctx context.Context, id int64) (*model.Scene, error)
	// ListScenesByWorld возвращает сцены мира, новые первыми.
	ListScenesByWorld(ctx context.Context, worldID int64) ([]model.Scene, error)
	CreateScene(ctx context.Context, in model.InsertScene) (*model.Scene, error)
	UpdateScene(ctx context.Context, id int64, patch model.ScenePatch) (*model.Scene, error)
	DeleteScene(ctx context.Context, id int64) (bool, error)
}

// ChatMessageRepository определяет методы для работы с сообщениями чата.
type ChatMessageRepository interface {
	// ListChatMessagesByCharacter возвращает сообщения в хронологическом порядке.
	ListChatMessagesByCharacter(ctx context.Context, characterID int64) ([]model.ChatMessage, error)
	// CreateChatMessage возвращает model.ErrCharacterNotFound, если персонажа нет.
	CreateChatMessage(ctx context.Context, in model.InsertChatMessage) (*model.ChatMessage, error)
}

// ActivityRepository определяет методы для журнала активности. Записи только добавляются.
type ActivityRepository interface {
	CreateActivityLog(ctx context.Context, in model.InsertActivityLog) (*model.ActivityLog, error)
	// ListActivityByWorld возвращает записи мира, новые первыми; limit <= 0 означает "все".
	ListActivityByWorld(ctx context.Context, worldID int64, limit int) ([]model.ActivityLog, error)
	ListActivityByUser(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error)
}

// Store объединяет все репозитории.
type Store interface {
	UserRepository
	WorldRepository
	CharacterRepository
	SceneRepository
	ChatMessageRepository
	ActivityRepository
}
