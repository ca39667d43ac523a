package advance_booking

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/pkg/money"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Assign(ctx context.Context, id int64, freelancerID int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// UserRepository интерфейс репозитория пользователей и реестра баллов
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	ApplyPointsEntry(ctx context.Context, entry *domain.PointsEntry) (*domain.PointsEntry, error)
	AddTotalSpent(ctx context.Context, userID int64, amount money.Money) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncBookingTransition(action, toStatus string)
	AddPointsEarned(points int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NoopMetrics заглушка метрик, когда сбор метрик выключен
type NoopMetrics struct{}

func (NoopMetrics) IncBookingTransition(string, string) {}
func (NoopMetrics) AddPointsEarned(int64)               {}
