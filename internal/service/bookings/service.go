package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований.
// Мутации жизненного цикла живут в usecase-слое (create_booking,
// advance_booking); здесь только выборки с проверкой прав доступа.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByReference получает бронирование по reference-коду.
// Доступно владельцу, назначенному фрилансеру и staff/admin.
func (s *Service) GetByReference(ctx context.Context, reference string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s for user=%d role=%s", reference, actor.UserID, actor.Role)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	if err := checkReadAccess(booking, actor); err != nil {
		s.logger.Warn("GetByReference: access denied for user=%d to booking ref=%s", actor.UserID, reference)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListForCustomer получает историю бронирований клиента, новые первыми.
// Клиент видит только свою историю; staff/admin — любую.
func (s *Service) ListForCustomer(ctx context.Context, req *models.GetUserBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListForCustomer: customer=%d, actor=%d role=%s", req.CustomerID, actor.UserID, actor.Role)

	if !actor.Role.IsStaff() && actor.UserID != req.CustomerID {
		s.logger.Warn("ListForCustomer: access denied for user=%d to customer=%d history", actor.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	status, err := parseOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListForCustomer: invalid status=%v for customer=%d", req.Status, req.CustomerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("ListForCustomer: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: ListForCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForCustomer: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForFreelancer получает назначенные фрилансеру заказы, новые первыми.
// Фрилансер видит только свои заказы; staff/admin — любые.
func (s *Service) ListForFreelancer(ctx context.Context, req *models.GetFreelancerBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListForFreelancer: freelancer=%d, actor=%d role=%s", req.FreelancerID, actor.UserID, actor.Role)

	if !actor.Role.IsStaff() && actor.UserID != req.FreelancerID {
		s.logger.Warn("ListForFreelancer: access denied for user=%d to freelancer=%d jobs", actor.UserID, req.FreelancerID)
		return nil, ErrAccessDenied
	}

	status, err := parseOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("ListForFreelancer: invalid status=%v for freelancer=%d", req.Status, req.FreelancerID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByFreelancerID(ctx, req.FreelancerID, status)
	if err != nil {
		s.logger.Error("ListForFreelancer: repository error for freelancer=%d: %v", req.FreelancerID, err)
		return nil, fmt.Errorf("%w: ListForFreelancer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForFreelancer: fetched %d bookings for freelancer=%d", len(bookings), req.FreelancerID)
	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с гибкой фильтрацией.
// Доступно только staff/admin.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("List: actor=%d role=%s, customer=%v, freelancer=%v, status=%v",
		actor.UserID, actor.Role, req.CustomerID, req.FreelancerID, req.Status)

	if !actor.Role.IsStaff() {
		s.logger.Warn("List: access denied for user=%d role=%s", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkReadAccess проверяет доступ актора к бронированию на чтение
func checkReadAccess(booking *domain.Booking, actor domain.Actor) error {
	if actor.Role.IsStaff() {
		return nil
	}
	if booking.CustomerID == actor.UserID {
		return nil
	}
	if booking.IsAssignedTo(actor.UserID) {
		return nil
	}
	return ErrAccessDenied
}

func parseOptionalStatus(s *string) (*domain.BookingStatus, error) {
	if s == nil {
		return nil, nil
	}
	status, ok := domain.ParseStatus(*s)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}
