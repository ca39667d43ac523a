package advance_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
)

// UseCase use case для переходов жизненного цикла бронирования.
// Единственная точка, которая мутирует статус: каждый переход
// проверяется по таблице domain.NextStatus и выполняется в
// сериализуемой транзакции с блокировкой строки бронирования.
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет переход статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("AdvanceBooking: ref=%s, action=%s, actor=%d role=%s",
		req.Reference, req.Action, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	action, err := req.validate()
	if err != nil {
		uc.logger.Warn("AdvanceBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result       *domain.Booking
		earnedPoints int64
	)

	// 2. Переход в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование с блокировкой строки (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByReference(txCtx, req.Reference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Проверка перехода и прав актора по таблице жизненного цикла
		nextStatus, err := domain.NextStatus(booking, req.Actor, action)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return ErrInvalidTransition
			}
			return ErrUnauthorized
		}

		// 2.3. Выполняем действие
		switch action {
		case domain.ActionAssign:
			if err := uc.assign(txCtx, booking, *req.FreelancerID, nextStatus); err != nil {
				return err
			}

		case domain.ActionCancel:
			if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.cancellationReason()); err != nil {
				return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
			}
			booking.FreelancerID = nil
			reason := req.cancellationReason()
			if reason != "" {
				booking.CancellationReason = &reason
			}
			now := time.Now()
			booking.CancelledAt = &now

		case domain.ActionStart:
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, nextStatus); err != nil {
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}

		case domain.ActionComplete:
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, nextStatus); err != nil {
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
			earned, err := uc.settleCompletion(txCtx, booking)
			if err != nil {
				return err
			}
			earnedPoints = earned
		}

		booking.Status = nextStatus
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrFreelancerNotFound),
			errors.Is(err, ErrNotAFreelancer),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrUnauthorized):
			uc.logger.Warn("AdvanceBooking: ref=%s rejected: %v", req.Reference, err)
			return nil, err
		default:
			uc.logger.Error("AdvanceBooking: ref=%s failed: %v", req.Reference, err)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncBookingTransition(string(action), string(result.Status))
	if earnedPoints > 0 {
		uc.metrics.AddPointsEarned(earnedPoints)
	}

	uc.logger.Info("AdvanceBooking: ref=%s -> %s (action=%s, actor=%d)",
		result.Reference, result.Status, action, req.Actor.UserID)

	return result, nil
}

// assign проверяет, что назначаемый пользователь существует и является
// фрилансером, и записывает назначение
func (uc *UseCase) assign(ctx context.Context, booking *domain.Booking, freelancerID int64, nextStatus domain.BookingStatus) error {
	profile, err := uc.userRepo.GetByID(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrFreelancerNotFound
		}
		return fmt.Errorf("%w: failed to get freelancer: %v", ErrInternal, err)
	}

	if profile.Role != domain.RoleFreelancer {
		return ErrNotAFreelancer
	}

	if err := uc.bookingRepo.Assign(ctx, booking.ID, freelancerID, nextStatus); err != nil {
		return fmt.Errorf("%w: failed to assign freelancer: %v", ErrInternal, err)
	}

	booking.FreelancerID = &freelancerID
	return nil
}

// settleCompletion начисляет баллы и накапливает траты клиента при
// завершении заказа. Бонус начисляется один раз и только по заказам
// без списания баллов; размер — floor(basePrice / EarnRandsPerPoint).
func (uc *UseCase) settleCompletion(ctx context.Context, booking *domain.Booking) (int64, error) {
	if err := uc.userRepo.AddTotalSpent(ctx, booking.CustomerID, booking.FinalPrice); err != nil {
		return 0, fmt.Errorf("%w: failed to add total spent: %v", ErrInternal, err)
	}

	if booking.UsedRedemption() {
		return 0, nil
	}

	earned := domain.EarnedPoints(booking.BasePrice)
	if earned == 0 {
		return 0, nil
	}

	// Профиль клиента с блокировкой строки (FOR UPDATE)
	profile, err := uc.userRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	entry := &domain.PointsEntry{
		UserID:       profile.ID,
		BookingID:    &booking.ID,
		EntryType:    domain.PointsEntryEarn,
		Amount:       earned,
		BalanceAfter: profile.Points + earned,
	}
	if _, err := uc.userRepo.ApplyPointsEntry(ctx, entry); err != nil {
		return 0, fmt.Errorf("%w: failed to apply points entry: %v", ErrInternal, err)
	}

	return earned, nil
}
