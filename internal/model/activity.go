package model

import "time"

// ActivityType - тип записи журнала активности.
type ActivityType string

const (
	ActivityWorldCreated     ActivityType = "WORLD_CREATED"
	ActivityWorldUpdated     ActivityType = "WORLD_UPDATED"
	ActivityCharacterCreated ActivityType = "CHARACTER_CREATED"
	ActivityCharacterUpdated ActivityType = "CHARACTER_UPDATED"
	ActivityCharacterChat    ActivityType = "CHARACTER_CHAT"
	ActivitySceneCreated     ActivityType = "SCENE_CREATED"
	ActivitySceneUpdated     ActivityType = "SCENE_UPDATED"
)

// ActivityLog - неизменяемая запись о действии внутри мира.
type ActivityLog struct {
	ID           int64        `json:"id"`
	WorldID      int64        `json:"worldId"`
	ActivityType ActivityType `json:"activityType"`
	EntityID     *int64       `json:"entityId"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// InsertActivityLog - данные для новой записи журнала.
type InsertActivityLog struct {
	WorldID      int64
	ActivityType ActivityType
	EntityID     *int64
	Description  string
}
