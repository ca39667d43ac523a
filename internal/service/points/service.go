package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	"github.com/m04kA/KMP-BookingService/internal/service/points/models"
)

// Service сервис чтения баланса и истории баллов.
// Начисление и списание выполняются в usecase-слое внутри транзакций
// вместе с мутациями бронирований.
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса баллов
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetPoints получает баланс и историю операций пользователя.
// Пользователь видит только свой баланс; staff/admin — любой.
func (s *Service) GetPoints(ctx context.Context, userID int64, actor domain.Actor) (*models.PointsResponse, error) {
	s.logger.Info("GetPoints: user=%d, actor=%d role=%s", userID, actor.UserID, actor.Role)

	if !actor.Role.IsStaff() && actor.UserID != userID {
		s.logger.Warn("GetPoints: access denied for user=%d to balance of user=%d", actor.UserID, userID)
		return nil, ErrAccessDenied
	}

	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetPoints: user=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetPoints: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetPoints - repository error: %v", ErrInternal, err)
	}

	entries, err := s.userRepo.GetLedger(ctx, userID)
	if err != nil {
		s.logger.Error("GetPoints: ledger error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetPoints - ledger error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPoints: user=%d balance=%d entries=%d", userID, profile.Points, len(entries))
	return models.FromDomain(profile, entries), nil
}
