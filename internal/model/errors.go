package model

import (
	"errors"
	"fmt"
)

// Стандартные ошибки приложения
var (
	// Ресурсы
	ErrNotFound          = errors.New("resource not found")
	ErrWorldNotFound     = fmt.Errorf("world %w", ErrNotFound)
	ErrCharacterNotFound = fmt.Errorf("character %w", ErrNotFound)
	ErrSceneNotFound     = fmt.Errorf("scene %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)

	// Пользователи
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Общие ошибки запросов
	ErrInvalidInput = errors.New("invalid input data")
)
