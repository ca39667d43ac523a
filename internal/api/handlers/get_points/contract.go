package get_points

import (
	"context"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/internal/service/points/models"
)

type PointsService interface {
	GetPoints(ctx context.Context, userID int64, actor domain.Actor) (*models.PointsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
