package bookings

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByFreelancerID(ctx context.Context, freelancerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
