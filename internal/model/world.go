package model

import "time"

// Допустимые темы мира.
const (
	ThemeFantasy         = "fantasy"
	ThemeSciFi           = "sci-fi"
	ThemeHistorical      = "historical"
	ThemeModern          = "modern"
	ThemePostApocalyptic = "post-apocalyptic"
)

// World - вымышленный мир, принадлежащий пользователю.
type World struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       *string   `json:"theme"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InsertWorld - данные для создания мира. ID и время задает хранилище.
type InsertWorld struct {
	UserID      int64
	Name        string
	Description string
	Theme       *string
}

// WorldPatch - частичное обновление мира; nil означает "не менять".
type WorldPatch struct {
	Name        *string
	Description *string
	Theme       *string
}
