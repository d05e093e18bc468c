package model

import "time"

// User представляет пользователя сервиса. Пароль хранится только в виде bcrypt-хеша.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Не возвращаем хеш в JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// InsertUser содержит данные для создания пользователя в хранилище.
type InsertUser struct {
	Username     string
	PasswordHash string
}
