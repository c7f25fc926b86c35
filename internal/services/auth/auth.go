// Package auth содержит логику бизнес-уровня для работы с пользователями
// и сессиями админ-панели.
//
// Сессию может держать только пользователь с меткой admin. Валидные
// учётные данные без этой метки получают AccessDenied, а уже выпущенный
// токен немедленно отзывается: частично живой сессии не-администратора
// не остаётся.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arqr-labs/halal-catalog/internal/lib/jwt"
	"github.com/arqr-labs/halal-catalog/internal/lib/password"
	"github.com/arqr-labs/halal-catalog/internal/lib/sl"
	"github.com/arqr-labs/halal-catalog/internal/models"
)

var (
	// ErrInvalidCredentials неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccessDenied учётные данные валидны, но метки admin нет.
	ErrAccessDenied = errors.New("access denied: admin label required")
	// ErrNoSession токен отсутствует, истёк или отозван.
	ErrNoSession = errors.New("no active session")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// TokenStore описывает хранилище отозванных сессионных токенов.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService отвечает за регистрацию, вход, выход и восстановление сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	tokens   TokenStore
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, tokens TokenStore, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		tokens:   tokens,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Сессию регистрация не выдаёт: после неё нужно выполнить вход.
// Метки-роли пустые, метку admin назначают отдельно.
func (s *AuthService) Register(ctx context.Context, email, name, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль, выпускает сессионный токен и требует метку admin.
// Если метки нет, только что выпущенный токен сразу отзывается и
// возвращается ErrAccessDenied.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Name, user.Labels)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if !user.IsAdmin() {
		// сессия создана, но держать её не-администратору нельзя
		if err := s.revokeToken(ctx, token); err != nil {
			s.log.Error("failed to revoke non-admin session token", sl.Err(err))
		}
		return "", nil, ErrAccessDenied
	}

	return token, user, nil
}

// Logout отзывает сессионный токен. Ошибка хранилища отзывов логируется
// и не возвращается: локальное состояние должно очищаться в любом случае,
// иначе пользователь окажется заперт в интерфейсе.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if err := s.revokeToken(ctx, token); err != nil {
		s.log.Error("failed to revoke session token on logout", sl.Err(err))
	}
}

// RestoreSession проверяет существующий токен на старте приложения.
// Живой токен без метки admin отзывается, наружу уходит ErrNoSession,
// а не сведения о пользователе.
func (s *AuthService) RestoreSession(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.validateClaims(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, ErrNoSession
	}
	if !user.IsAdmin() {
		if err := s.revokeToken(ctx, token); err != nil {
			s.log.Error("failed to revoke non-admin session token", sl.Err(err))
		}
		return nil, ErrNoSession
	}
	return user, nil
}

// ValidateToken проверяет токен для HTTP middleware и возвращает пользователя
// из claims без похода в базу.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.validateClaims(ctx, token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UID:    claims.UserUID,
		Name:   claims.Name,
		Labels: claims.Labels,
	}, nil
}

func (s *AuthService) validateClaims(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrNoSession
	}
	revoked, err := s.tokens.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrNoSession
	}
	return claims, nil
}

func (s *AuthService) revokeToken(ctx context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		// невалидный токен и так не даёт сессии
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokens.Revoke(ctx, token, ttl)
}
