package get_quote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	catalogClient "github.com/m04kA/KMP-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/KMP-BookingService/pkg/money"
)

type fakeUserRepo struct {
	profile *domain.UserProfile
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	if f.profile == nil || f.profile.ID != userID {
		return nil, userRepo.ErrUserNotFound
	}
	return f.profile, nil
}

type fakeCatalog struct {
	service *domain.Service
}

func (f *fakeCatalog) GetService(_ context.Context, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, catalogClient.ErrServiceNotFound
	}
	return f.service, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase() *UseCase {
	return NewUseCase(
		&fakeUserRepo{profile: &domain.UserProfile{ID: 10, Role: domain.RoleCustomer, Points: 1250}},
		&fakeCatalog{service: &domain.Service{ID: 5, Title: "Портретная съемка", BasePrice: money.FromRands(1500)}},
		nopLogger{},
	)
}

func TestExecute_WithRedeem(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 10, Role: domain.RoleCustomer},
		ServiceID: 5,
		Redeem:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, resp.BasePrice)
	assert.Equal(t, 125.0, resp.Discount)
	assert.Equal(t, 1375.0, resp.FinalPrice)
	assert.Equal(t, int64(1250), resp.PointsToRedeem)
	assert.Equal(t, int64(1250), resp.PointsBalance)
}

func TestExecute_WithoutRedeem(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 10, Role: domain.RoleCustomer},
		ServiceID: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 1500.0, resp.FinalPrice)
	assert.Equal(t, int64(0), resp.PointsToRedeem)
	// Баланс не меняется: расчет без побочных эффектов
	assert.Equal(t, int64(1250), resp.PointsBalance)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 10, Role: domain.RoleCustomer},
		ServiceID: 404,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 11, Role: domain.RoleCustomer},
		ServiceID: 5,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_InvalidServiceID(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: 10, Role: domain.RoleCustomer},
		ServiceID: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
