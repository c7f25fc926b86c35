package middlewarectx

import (
	"context"

	"github.com/arqr-labs/halal-catalog/internal/models"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}
