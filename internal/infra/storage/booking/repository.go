package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KMP-BookingService/pkg/money"
	"github.com/m04kA/KMP-BookingService/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки PostgreSQL 23505 (unique_violation)
const uniqueViolationCode = "23505"

var bookingColumns = []string{
	"id",
	"reference",
	"customer_id",
	"service_id",
	"freelancer_id",
	"status",
	"meeting_type",
	"location_address",
	"virtual_link",
	"scheduled_at",
	"service_title",
	"base_price_cents",
	"discount_cents",
	"final_price_cents",
	"redeemed_points",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её —
// создание с одновременным списанием баллов выполняется атомарно.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_id",
			"service_id",
			"status",
			"meeting_type",
			"location_address",
			"virtual_link",
			"scheduled_at",
			"service_title",
			"base_price_cents",
			"discount_cents",
			"final_price_cents",
			"redeemed_points",
		).
		Values(
			booking.Reference,
			booking.CustomerID,
			booking.ServiceID,
			booking.Status,
			booking.MeetingType,
			booking.LocationAddress,
			booking.VirtualLink,
			booking.ScheduledAt,
			booking.ServiceTitle,
			booking.BasePrice.Cents(),
			booking.Discount.Cents(),
			booking.FinalPrice.Cents(),
			booking.RedeemedPoints,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по внутреннему ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы сериализовать
// конкурентные мутации одного бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по reference-коду
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	where := squirrel.Eq{"customer_id": customerID}
	if status != nil {
		where["status"] = *status
	}
	return r.list(ctx, where, "GetByCustomerID")
}

// GetByFreelancerID получает назначенные фрилансеру бронирования, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByFreelancerID(ctx context.Context, freelancerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	where := squirrel.Eq{"freelancer_id": freelancerID}
	if status != nil {
		where["status"] = *status
	}
	return r.list(ctx, where, "GetByFreelancerID")
}

// List получает бронирования с гибкой фильтрацией (для staff/admin).
// Все поля фильтра опциональны; пустой фильтр возвращает всё.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	where := squirrel.Eq{}
	if filter.CustomerID != nil {
		where["customer_id"] = *filter.CustomerID
	}
	if filter.FreelancerID != nil {
		where["freelancer_id"] = *filter.FreelancerID
	}
	if filter.Status != nil {
		where["status"] = *filter.Status
	}
	return r.list(ctx, where, "List")
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, op string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if len(where) > 0 {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows, op)
}

// UpdateStatus обновляет статус бронирования (start/complete переходы)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Assign назначает фрилансера и переводит бронирование в новый статус
func (r *Repository) Assign(ctx context.Context, id int64, freelancerID int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("freelancer_id", freelancerID).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Assign - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Assign")
}

// Cancel отменяет бронирование с указанием причины.
// Назначенный фрилансер снимается с заказа (без штрафа).
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("freelancer_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var basePrice, discount, finalPrice int64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.FreelancerID,
		&booking.Status,
		&booking.MeetingType,
		&booking.LocationAddress,
		&booking.VirtualLink,
		&booking.ScheduledAt,
		&booking.ServiceTitle,
		&basePrice,
		&discount,
		&finalPrice,
		&booking.RedeemedPoints,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BasePrice = money.Money(basePrice)
	booking.Discount = money.Money(discount)
	booking.FinalPrice = money.Money(finalPrice)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows, op string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
