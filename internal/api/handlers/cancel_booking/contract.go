package cancel_booking

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	advanceBooking "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
)

type AdvanceBookingUseCase interface {
	Execute(ctx context.Context, req *advanceBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
