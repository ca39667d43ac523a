package points

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей и реестра баллов
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	GetLedger(ctx context.Context, userID int64) ([]*domain.PointsEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
