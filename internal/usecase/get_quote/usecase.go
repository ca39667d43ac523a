package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	catalogClient "github.com/m04kA/KMP-BookingService/internal/integrations/catalogservice"
)

// UseCase use case предварительного расчета цены.
// Чистый расчет без побочных эффектов: баллы не списываются,
// клиент видит скидку до подтверждения бронирования.
type UseCase struct {
	userRepo      UserRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(userRepo UserRepository, catalogClient CatalogServiceClient, logger Logger) *UseCase {
	return &UseCase{
		userRepo:      userRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет расчет цены для услуги и текущего баланса актора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: user=%d, service=%d, redeem=%t", req.Actor.UserID, req.ServiceID, req.Redeem)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetQuote: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetQuote: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	profile, err := uc.userRepo.GetByID(ctx, req.Actor.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("GetQuote: user=%d not found", req.Actor.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("GetQuote: failed to get user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	quote := domain.ComputeFinalPrice(service.BasePrice, profile.Points, req.Redeem)

	return &Response{
		ServiceID:      service.ID,
		ServiceTitle:   service.Title,
		BasePrice:      quote.BasePrice.Rands(),
		Discount:       quote.Discount.Rands(),
		FinalPrice:     quote.FinalPrice.Rands(),
		PointsToRedeem: quote.PointsToRedeem,
		PointsBalance:  profile.Points,
	}, nil
}
