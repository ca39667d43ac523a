package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	catalogClient "github.com/m04kA/KMP-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/KMP-BookingService/pkg/money"
	"github.com/m04kA/KMP-BookingService/pkg/ptr"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	created    []*domain.Booking
	createErrs []error // возвращаются по порядку, затем nil
	nextID     int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = append(f.created, &created)
	return &created, nil
}

type fakeUserRepo struct {
	profile *domain.UserProfile
	getErr  error
	entries []*domain.PointsEntry
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.profile == nil || f.profile.ID != userID {
		return nil, userRepo.ErrUserNotFound
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeUserRepo) ApplyPointsEntry(_ context.Context, entry *domain.PointsEntry) (*domain.PointsEntry, error) {
	f.entries = append(f.entries, entry)
	f.profile.Points = entry.BalanceAfter
	return entry, nil
}

type fakeCatalog struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalog) GetService(_ context.Context, serviceID int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.service == nil || f.service.ID != serviceID {
		return nil, catalogClient.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeRefGen struct {
	codes []string
	calls int
}

func (f *fakeRefGen) Generate() (string, error) {
	code := f.codes[f.calls%len(f.codes)]
	f.calls++
	return code, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	users    *fakeUserRepo
	catalog  *fakeCatalog
	refs     *fakeRefGen
	tx       *fakeTxManager
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	f := &fixture{
		bookings: &fakeBookingRepo{},
		users: &fakeUserRepo{
			profile: &domain.UserProfile{
				ID:     10,
				Role:   domain.RoleCustomer,
				Points: 1250,
			},
		},
		catalog: &fakeCatalog{
			service: &domain.Service{
				ID:        5,
				Title:     "Портретная съемка",
				BasePrice: money.FromRands(1500),
			},
		},
		refs: &fakeRefGen{codes: []string{"KMP-AAAAA", "KMP-BBBBB", "KMP-CCCCC"}},
		tx:   &fakeTxManager{},
		now:  now,
	}

	f.uc = NewUseCase(f.bookings, f.users, f.catalog, f.refs, f.tx, NoopMetrics{}, nopLogger{})
	f.uc.timeProvider = &fixedTime{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		Actor:       domain.Actor{UserID: 10, Role: domain.RoleCustomer},
		ServiceID:   5,
		MeetingType: "virtual",
		ScheduledAt: time.Date(2026, 2, 15, 14, 0, 0, 0, time.UTC),
	}
}

// Тесты

func TestExecute_WithoutRedemption(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "KMP-AAAAA", resp.Reference)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1500.0, resp.BasePrice)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 1500.0, resp.FinalPrice)
	assert.Equal(t, int64(0), resp.RedeemedPoints)
	assert.Equal(t, int64(1250), resp.PointsBalance)

	// Без списания записей в реестре нет
	assert.Empty(t, f.users.entries)
}

func TestExecute_WithRedemption(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.RedeemPoints = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// База R1500, 1250 баллов = R125 меньше капа 30% (R450)
	assert.Equal(t, 125.0, resp.Discount)
	assert.Equal(t, 1375.0, resp.FinalPrice)
	assert.Equal(t, int64(1250), resp.RedeemedPoints)
	assert.Equal(t, int64(0), resp.PointsBalance)

	require.Len(t, f.users.entries, 1)
	entry := f.users.entries[0]
	assert.Equal(t, domain.PointsEntryRedeem, entry.EntryType)
	assert.Equal(t, int64(-1250), entry.Amount)
	assert.Equal(t, int64(0), entry.BalanceAfter)
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, f.bookings.created[0].ID, *entry.BookingID)
}

func TestExecute_RedemptionCapped(t *testing.T) {
	f := newFixture()
	f.users.profile.Points = 10000

	req := validRequest()
	req.RedeemPoints = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Кап 30% от R1500 = R450 = 4500 баллов
	assert.Equal(t, 450.0, resp.Discount)
	assert.Equal(t, 1050.0, resp.FinalPrice)
	assert.Equal(t, int64(4500), resp.RedeemedPoints)
	assert.Equal(t, int64(5500), resp.PointsBalance)
}

func TestExecute_NotCustomer(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Actor.Role = domain.RoleFreelancer

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotCustomer)
}

func TestExecute_PhysicalRequiresLocation(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.MeetingType = "physical"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationRequired)

	// Пустая строка тоже не адрес
	req.Location = ptr.Ptr("   ")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestExecute_AmbiguousPayload(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.MeetingType = "physical"
	req.Location = ptr.Ptr("12 Long Street, Cape Town")
	req.VirtualLink = ptr.Ptr("https://meet.example.com/x")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmbiguousMeetingPayload)

	req = validRequest()
	req.Location = ptr.Ptr("12 Long Street, Cape Town")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmbiguousMeetingPayload)
}

func TestExecute_InvalidMeetingType(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.MeetingType = "hybrid"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidMeetingType)
}

func TestExecute_ScheduleInPast(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ScheduledAt = f.now.Add(-time.Hour)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleInPast)

	// Ровно "сейчас" тоже отклоняется
	req.ScheduledAt = f.now
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleInPast)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixture()
	f.users.profile = &domain.UserProfile{ID: 999, Role: domain.RoleCustomer}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_ServiceRequiresLocation(t *testing.T) {
	f := newFixture()
	f.catalog.service.RequiresLocation = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestExecute_ReferenceCollisionRetries(t *testing.T) {
	f := newFixture()
	f.bookings.createErrs = []error{bookingRepo.ErrDuplicateReference}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Первый код занят, второй прошел
	assert.Equal(t, "KMP-BBBBB", resp.Reference)
	assert.Equal(t, 2, f.refs.calls)
	assert.Equal(t, 2, f.tx.calls)
}

func TestExecute_ReferenceCollisionsExhausted(t *testing.T) {
	f := newFixture()
	f.bookings.createErrs = []error{
		bookingRepo.ErrDuplicateReference,
		bookingRepo.ErrDuplicateReference,
		bookingRepo.ErrDuplicateReference,
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxReferenceAttempts, f.refs.calls)
}

func TestExecute_VirtualLinkNormalized(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.VirtualLink = ptr.Ptr("  https://meet.example.com/room  ")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.VirtualLink)
	assert.Equal(t, "https://meet.example.com/room", *resp.VirtualLink)
	assert.Nil(t, resp.Location)
}
