package model

import "time"

// ChatMessage - сообщение в диалоге пользователя с персонажем. Сообщения не изменяются.
type ChatMessage struct {
	ID            int64     `json:"id"`
	CharacterID   int64     `json:"characterId"`
	UserID        int64     `json:"userId"`
	IsUserMessage bool      `json:"isUserMessage"`
	Content       string    `json:"content"`
	Mood          *string   `json:"mood"`
	MoodIntensity *float64  `json:"moodIntensity"`
	MoodColor     *string   `json:"moodColor"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertChatMessage - данные для создания сообщения.
type InsertChatMessage struct {
	CharacterID   int64
	UserID        int64
	IsUserMessage bool
	Content       string
	Mood          *string
	MoodIntensity *float64
	MoodColor     *string
}
