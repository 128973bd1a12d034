// Package auth отвечает за вход администратора и проверку JWT.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/jwt"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/password"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	GetUser(ctx context.Context, id int) (models.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, bool, error)
	CreateUser(ctx context.Context, in models.UserInput) (models.User, error)
}

type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// EnsureAdmin создает учетную запись администратора, если её ещё нет.
// Существующая запись не перезаписывается.
func (s *Service) EnsureAdmin(ctx context.Context, username, passwordHash string) (models.User, error) {
	const op = "auth.EnsureAdmin"

	if err := password.ValidateHash(passwordHash); err != nil {
		return models.User{}, fmt.Errorf("%s: admin password hash: %w", op, err)
	}

	user, found, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		s.log.Debug("admin user already exists", slog.Int("id", user.ID))
		return user, nil
	}

	user, err = s.users.CreateUser(ctx, models.UserInput{Username: username, PasswordHash: passwordHash})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin user created", slog.Int("id", user.ID), slog.String("username", username))
	return user, nil
}

// Login проверяет пароль и возвращает подписанный JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, found, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Error("stored password hash is broken", slog.Int("id", user.ID))
		}
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Authorize проверяет токен и возвращает пользователя, которому он выдан.
func (s *Service) Authorize(ctx context.Context, token string) (models.User, error) {
	const op = "auth.Authorize"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.Role != RoleAdmin {
		return models.User{}, ErrUnauthorized
	}
	id, err := claims.UserID()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, found, err := s.users.GetUser(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}
