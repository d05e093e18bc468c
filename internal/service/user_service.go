package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dreamscribe/internal/model"
	"dreamscribe/internal/repository"
)

// UserService регистрирует и аутентифицирует пользователей.
type UserService struct {
	repo   repository.UserRepository
	cost   int
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost, logger: logger.Named("UserService")}
}

// Register создает пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.CreateUser(ctx, model.InsertUser{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.Int64("userID", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Authenticate проверяет имя и пароль.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

// EnsureUser возвращает существующего пользователя или создает нового.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}
	return s.Register(ctx, username, password)
}
