package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей и реестра баллов
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	ApplyPointsEntry(ctx context.Context, entry *domain.PointsEntry) (*domain.PointsEntry, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// ReferenceGenerator интерфейс генератора reference-кодов
type ReferenceGenerator interface {
	Generate() (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс доменных метрик (может быть nil-безопасной заглушкой)
type Metrics interface {
	IncBookingCreated(meetingType string)
	AddPointsRedeemed(points int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NoopMetrics заглушка метрик, когда сбор метрик выключен
type NoopMetrics struct{}

func (NoopMetrics) IncBookingCreated(string) {}
func (NoopMetrics) AddPointsRedeemed(int64)  {}
