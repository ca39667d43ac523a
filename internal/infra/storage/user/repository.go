package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	"github.com/m04kA/KMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KMP-BookingService/pkg/money"
	"github.com/m04kA/KMP-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий профилей пользователей и реестра баллов.
// Баланс хранится в users.points как свертка append-only таблицы
// points_ledger; обе записи обновляются в одной транзакции.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// userColumns колонки таблицы users, которые читает репозиторий
var userColumns = []string{
	"id",
	"email",
	"role",
	"full_name",
	"points",
	"total_spent_cents",
	"created_at",
	"updated_at",
}

// GetByID получает профиль пользователя.
// Внутри транзакции строка блокируется (FOR UPDATE) — конкурентные
// операции earn/redeem по одному пользователю сериализуются.
func (r *Repository) GetByID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": userID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.UserProfile
	var totalSpent int64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Role,
		&profile.FullName,
		&profile.Points,
		&totalSpent,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	profile.TotalSpent = money.Money(totalSpent)
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

// ApplyPointsEntry добавляет запись в реестр баллов и переносит баланс
// в users.points. Вызывается только внутри транзакции, после того как
// вызывающая сторона прочитала профиль с блокировкой и вычислила
// BalanceAfter.
func (r *Repository) ApplyPointsEntry(ctx context.Context, entry *domain.PointsEntry) (*domain.PointsEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("points_ledger").
		Columns("user_id", "booking_id", "entry_type", "amount", "balance_after").
		Values(entry.UserID, entry.BookingID, entry.EntryType, entry.Amount, entry.BalanceAfter).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ApplyPointsEntry - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: ApplyPointsEntry - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	query, args, err = psqlbuilder.Update("users").
		Set("points", entry.BalanceAfter).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entry.UserID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ApplyPointsEntry - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyPointsEntry - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyPointsEntry - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return entry, nil
}

// AddTotalSpent увеличивает накопленную сумму трат пользователя
func (r *Repository) AddTotalSpent(ctx context.Context, userID int64, amount money.Money) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("total_spent_cents", squirrel.Expr("total_spent_cents + ?", amount.Cents())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddTotalSpent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddTotalSpent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddTotalSpent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ledgerColumns колонки таблицы points_ledger, которые читает репозиторий
var ledgerColumns = []string{
	"id",
	"user_id",
	"booking_id",
	"entry_type",
	"amount",
	"balance_after",
	"created_at",
}

// GetLedger получает историю операций с баллами, новые первыми
func (r *Repository) GetLedger(ctx context.Context, userID int64) ([]*domain.PointsEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ledgerColumns...).
		From("points_ledger").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLedger - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLedger - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.PointsEntry, 0)
	for rows.Next() {
		var entry domain.PointsEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BookingID,
			&entry.EntryType,
			&entry.Amount,
			&entry.BalanceAfter,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLedger - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLedger - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
