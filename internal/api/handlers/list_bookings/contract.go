package list_bookings

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
