package points

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	"github.com/m04kA/KMP-BookingService/pkg/money"
	"github.com/m04kA/KMP-BookingService/pkg/ptr"
)

type fakeRepo struct {
	profile *domain.UserProfile
	ledger  []*domain.PointsEntry
}

func (f *fakeRepo) GetByID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	if f.profile == nil || f.profile.ID != userID {
		return nil, userRepo.ErrUserNotFound
	}
	return f.profile, nil
}

func (f *fakeRepo) GetLedger(_ context.Context, _ int64) ([]*domain.PointsEntry, error) {
	return f.ledger, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetPoints_Self(t *testing.T) {
	repo := &fakeRepo{
		profile: &domain.UserProfile{
			ID:         10,
			Role:       domain.RoleCustomer,
			Points:     109,
			TotalSpent: money.FromRands(950),
		},
		ledger: []*domain.PointsEntry{
			{ID: 2, UserID: 10, BookingID: ptr.Ptr(int64(1)), EntryType: domain.PointsEntryEarn, Amount: 9, BalanceAfter: 109},
			{ID: 1, UserID: 10, EntryType: domain.PointsEntryRedeem, Amount: -100, BalanceAfter: 100},
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetPoints(context.Background(), 10, domain.Actor{UserID: 10, Role: domain.RoleCustomer})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.UserID)
	assert.Equal(t, int64(109), resp.Balance)
	assert.Equal(t, 950.0, resp.TotalSpent)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "earn", resp.Entries[0].EntryType)
	assert.Equal(t, int64(-100), resp.Entries[1].Amount)
}

func TestGetPoints_OtherUserDenied(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetPoints(context.Background(), 10, domain.Actor{UserID: 11, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPoints_StaffAllowed(t *testing.T) {
	repo := &fakeRepo{profile: &domain.UserProfile{ID: 10, Role: domain.RoleCustomer}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetPoints(context.Background(), 10, domain.Actor{UserID: 99, Role: domain.RoleStaff})
	assert.NoError(t, err)
}

func TestGetPoints_UserNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetPoints(context.Background(), 10, domain.Actor{UserID: 99, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
