package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	catalogClient "github.com/m04kA/KMP-BookingService/internal/integrations/catalogservice"
)

// maxReferenceAttempts число попыток при коллизии reference-кода
const maxReferenceAttempts = 3

// UseCase use case для создания бронирования.
// Создание брони и списание баллов выполняются в одной сериализуемой
// транзакции: конкурентные списания по одному клиенту не могут
// потерять обновление баланса.
type UseCase struct {
	bookingRepo   BookingRepository
	userRepo      UserRepository
	catalogClient CatalogServiceClient
	refGenerator  ReferenceGenerator
	txManager     TransactionManager
	timeProvider  TimeProvider
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	catalogClient CatalogServiceClient,
	refGenerator ReferenceGenerator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
		catalogClient: catalogClient,
		refGenerator:  refGenerator,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, meeting=%s, scheduled=%s, redeem=%t",
		req.Actor.UserID, req.ServiceID, req.MeetingType, req.ScheduledAt, req.RedeemPoints)

	// 1. Валидация входных данных
	meetingType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата сессии строго в будущем
	now := uc.timeProvider.Now()
	if err := validateSchedule(req.ScheduledAt, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Услуга с обязательной локацией не бронируется виртуально
	if service.RequiresLocation && meetingType == domain.MeetingVirtual {
		uc.logger.Warn("CreateBooking: service id=%d requires a physical location", req.ServiceID)
		return nil, ErrLocationRequired
	}

	location, virtualLink := normalizePayload(meetingType, req.Location, req.VirtualLink)

	var (
		result  *domain.Booking
		balance int64
	)

	// 5. Создаем бронирование; при коллизии reference-кода пробуем заново
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference, err := uc.refGenerator.Generate()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate reference: %v", err)
			return nil, fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
		}

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 5.1. Профиль клиента с блокировкой строки (FOR UPDATE)
			profile, err := uc.userRepo.GetByID(txCtx, req.Actor.UserID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					return ErrUserNotFound
				}
				return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
			}

			// 5.2. Расчет скидки от текущего баланса
			quote := domain.ComputeFinalPrice(service.BasePrice, profile.Points, req.RedeemPoints)

			// 5.3. Списание баллов, если скидка применена
			newBalance := profile.Points
			if quote.PointsToRedeem > 0 {
				newBalance = profile.Points - quote.PointsToRedeem
				if newBalance < 0 {
					// Недостижимо при корректном расчете; инвариант баланса
					return ErrInsufficientPoints
				}
			}

			// 5.4. Создаем бронирование
			booking := &domain.Booking{
				Reference:       reference,
				CustomerID:      profile.ID,
				ServiceID:       service.ID,
				Status:          domain.StatusPending,
				MeetingType:     meetingType,
				LocationAddress: location,
				VirtualLink:     virtualLink,
				ScheduledAt:     req.ScheduledAt,
				// Денормализация данных услуги
				ServiceTitle:   service.Title,
				BasePrice:      quote.BasePrice,
				Discount:       quote.Discount,
				FinalPrice:     quote.FinalPrice,
				RedeemedPoints: quote.PointsToRedeem,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}

			// 5.5. Запись списания в реестр баллов — той же транзакцией
			if quote.PointsToRedeem > 0 {
				entry := &domain.PointsEntry{
					UserID:       profile.ID,
					BookingID:    &created.ID,
					EntryType:    domain.PointsEntryRedeem,
					Amount:       -quote.PointsToRedeem,
					BalanceAfter: newBalance,
				}
				if _, err := uc.userRepo.ApplyPointsEntry(txCtx, entry); err != nil {
					return fmt.Errorf("%w: failed to apply points entry: %v", ErrInternal, err)
				}
			}

			result = created
			balance = newBalance
			return nil
		})

		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			uc.logger.Warn("CreateBooking: reference collision on %s, retrying", reference)
			continue
		}
		if err != nil {
			if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInsufficientPoints) {
				uc.logger.Warn("CreateBooking: %v", err)
				return nil, err
			}
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		break
	}

	if result == nil {
		uc.logger.Error("CreateBooking: reference collisions exhausted %d attempts", maxReferenceAttempts)
		return nil, fmt.Errorf("%w: could not allocate a unique reference", ErrInternal)
	}

	uc.metrics.IncBookingCreated(string(result.MeetingType))
	if result.RedeemedPoints > 0 {
		uc.metrics.AddPointsRedeemed(result.RedeemedPoints)
	}

	uc.logger.Info("CreateBooking: created booking ref=%s for customer=%d, final=%s, redeemed=%d",
		result.Reference, result.CustomerID, result.FinalPrice, result.RedeemedPoints)

	return toResponse(result, balance), nil
}
