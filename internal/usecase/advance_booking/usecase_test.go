package advance_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	"github.com/m04kA/KMP-BookingService/pkg/money"
	"github.com/m04kA/KMP-BookingService/pkg/ptr"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking

	updatedStatus *domain.BookingStatus
	assignedTo    *int64
	cancelled     bool
	cancelReason  string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.Reference] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := f.bookings[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Assign(_ context.Context, _ int64, freelancerID int64, _ domain.BookingStatus) error {
	f.assignedTo = &freelancerID
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

type fakeUserRepo struct {
	profiles   map[int64]*domain.UserProfile
	entries    []*domain.PointsEntry
	totalSpent map[int64]money.Money
}

func newFakeUserRepo(profiles ...*domain.UserProfile) *fakeUserRepo {
	m := make(map[int64]*domain.UserProfile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeUserRepo{profiles: m, totalSpent: make(map[int64]money.Money)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeUserRepo) ApplyPointsEntry(_ context.Context, entry *domain.PointsEntry) (*domain.PointsEntry, error) {
	f.entries = append(f.entries, entry)
	f.profiles[entry.UserID].Points = entry.BalanceAfter
	return entry, nil
}

func (f *fakeUserRepo) AddTotalSpent(_ context.Context, userID int64, amount money.Money) error {
	f.totalSpent[userID] += amount
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		Reference:   "KMP-AAAAA",
		CustomerID:  10,
		ServiceID:   5,
		Status:      domain.StatusPending,
		MeetingType: domain.MeetingVirtual,
		ScheduledAt: time.Date(2026, 2, 15, 14, 0, 0, 0, time.UTC),
		BasePrice:   money.FromRands(950),
		FinalPrice:  money.FromRands(950),
	}
}

func newUseCase(bookings *fakeBookingRepo, users *fakeUserRepo) *UseCase {
	return NewUseCase(bookings, users, fakeTxManager{}, NoopMetrics{}, nopLogger{})
}

var (
	staff      = domain.Actor{UserID: 99, Role: domain.RoleStaff}
	owner      = domain.Actor{UserID: 10, Role: domain.RoleCustomer}
	freelancer = domain.Actor{UserID: 20, Role: domain.RoleFreelancer}
)

// Тесты

func TestExecute_Assign(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	users := newFakeUserRepo(&domain.UserProfile{ID: 20, Role: domain.RoleFreelancer})
	uc := newUseCase(bookings, users)

	result, err := uc.Execute(context.Background(), &Request{
		Reference:    "KMP-AAAAA",
		Actor:        staff,
		Action:       "assign",
		FreelancerID: ptr.Ptr(int64(20)),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, result.Status)
	require.NotNil(t, result.FreelancerID)
	assert.Equal(t, int64(20), *result.FreelancerID)
	require.NotNil(t, bookings.assignedTo)
	assert.Equal(t, int64(20), *bookings.assignedTo)
}

func TestExecute_AssignRequiresFreelancerID(t *testing.T) {
	uc := newUseCase(newFakeBookingRepo(pendingBooking()), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     staff,
		Action:    "assign",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AssignUnknownFreelancer(t *testing.T) {
	uc := newUseCase(newFakeBookingRepo(pendingBooking()), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference:    "KMP-AAAAA",
		Actor:        staff,
		Action:       "assign",
		FreelancerID: ptr.Ptr(int64(20)),
	})
	assert.ErrorIs(t, err, ErrFreelancerNotFound)
}

func TestExecute_AssignNonFreelancer(t *testing.T) {
	users := newFakeUserRepo(&domain.UserProfile{ID: 20, Role: domain.RoleCustomer})
	uc := newUseCase(newFakeBookingRepo(pendingBooking()), users)

	_, err := uc.Execute(context.Background(), &Request{
		Reference:    "KMP-AAAAA",
		Actor:        staff,
		Action:       "assign",
		FreelancerID: ptr.Ptr(int64(20)),
	})
	assert.ErrorIs(t, err, ErrNotAFreelancer)
}

func TestExecute_AssignByCustomer(t *testing.T) {
	users := newFakeUserRepo(&domain.UserProfile{ID: 20, Role: domain.RoleFreelancer})
	uc := newUseCase(newFakeBookingRepo(pendingBooking()), users)

	_, err := uc.Execute(context.Background(), &Request{
		Reference:    "KMP-AAAAA",
		Actor:        owner,
		Action:       "assign",
		FreelancerID: ptr.Ptr(int64(20)),
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_StartByAssignedFreelancer(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusAccepted
	b.FreelancerID = ptr.Ptr(int64(20))
	bookings := newFakeBookingRepo(b)
	uc := newUseCase(bookings, newFakeUserRepo())

	result, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     freelancer,
		Action:    "start",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, result.Status)
	require.NotNil(t, bookings.updatedStatus)
	assert.Equal(t, domain.StatusInProgress, *bookings.updatedStatus)
}

func TestExecute_StartByUnassignedFreelancer(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusAccepted
	b.FreelancerID = ptr.Ptr(int64(21))
	uc := newUseCase(newFakeBookingRepo(b), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     freelancer,
		Action:    "start",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_CompleteEarnsPoints(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusInProgress
	b.FreelancerID = ptr.Ptr(int64(20))
	users := newFakeUserRepo(&domain.UserProfile{ID: 10, Role: domain.RoleCustomer, Points: 100})
	uc := newUseCase(newFakeBookingRepo(b), users)

	result, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     freelancer,
		Action:    "complete",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)

	// База R950 дает floor(950/100) = 9 баллов
	require.Len(t, users.entries, 1)
	entry := users.entries[0]
	assert.Equal(t, domain.PointsEntryEarn, entry.EntryType)
	assert.Equal(t, int64(9), entry.Amount)
	assert.Equal(t, int64(109), entry.BalanceAfter)
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, b.ID, *entry.BookingID)

	// Траты клиента накапливаются по итоговой цене
	assert.Equal(t, money.FromRands(950), users.totalSpent[10])
}

func TestExecute_CompleteRedeemedBookingEarnsNothing(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusInProgress
	b.FreelancerID = ptr.Ptr(int64(20))
	b.RedeemedPoints = 500
	b.Discount = money.FromRands(50)
	b.FinalPrice = money.FromRands(900)
	users := newFakeUserRepo(&domain.UserProfile{ID: 10, Role: domain.RoleCustomer})
	uc := newUseCase(newFakeBookingRepo(b), users)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     freelancer,
		Action:    "complete",
	})
	require.NoError(t, err)

	// Заказ со списанием баллов бонус не генерирует
	assert.Empty(t, users.entries)
	assert.Equal(t, money.FromRands(900), users.totalSpent[10])
}

func TestExecute_CompleteBelowEarnThreshold(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusInProgress
	b.FreelancerID = ptr.Ptr(int64(20))
	b.BasePrice = money.FromRands(99)
	b.FinalPrice = money.FromRands(99)
	users := newFakeUserRepo(&domain.UserProfile{ID: 10, Role: domain.RoleCustomer})
	uc := newUseCase(newFakeBookingRepo(b), users)

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     freelancer,
		Action:    "complete",
	})
	require.NoError(t, err)

	assert.Empty(t, users.entries)
}

func TestExecute_CancelPendingByOwner(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking())
	uc := newUseCase(bookings, newFakeUserRepo())

	result, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     owner,
		Action:    "cancel",
		Reason:    ptr.Ptr("передумал"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, result.Status)
	assert.Nil(t, result.FreelancerID)
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, "передумал", *result.CancellationReason)
	assert.True(t, bookings.cancelled)
	assert.Equal(t, "передумал", bookings.cancelReason)
}

func TestExecute_CancelAcceptedByOwnerRejected(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusAccepted
	b.FreelancerID = ptr.Ptr(int64(20))
	uc := newUseCase(newFakeBookingRepo(b), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     owner,
		Action:    "cancel",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_CancelAcceptedByStaffClearsFreelancer(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusAccepted
	b.FreelancerID = ptr.Ptr(int64(20))
	uc := newUseCase(newFakeBookingRepo(b), newFakeUserRepo())

	result, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     staff,
		Action:    "cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, result.Status)
	assert.Nil(t, result.FreelancerID)
}

func TestExecute_TerminalBookingRejectsActions(t *testing.T) {
	b := pendingBooking()
	b.Status = domain.StatusCancelled
	uc := newUseCase(newFakeBookingRepo(b), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     staff,
		Action:    "cancel",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(newFakeBookingRepo(), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-ZZZZZ",
		Actor:     staff,
		Action:    "cancel",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_UnknownAction(t *testing.T) {
	uc := newUseCase(newFakeBookingRepo(pendingBooking()), newFakeUserRepo())

	_, err := uc.Execute(context.Background(), &Request{
		Reference: "KMP-AAAAA",
		Actor:     staff,
		Action:    "approve",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
