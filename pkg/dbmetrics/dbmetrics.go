// Package dbmetrics оборачивает *sql.DB сбором метрик и предоставляет
// механизм проброса транзакции через context. Репозитории не знают,
// выполняются ли они в транзакции: они всегда берут executor через
// GetExecutor, а менеджер транзакций кладет активный Tx в context.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и их оберток
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor executor с управлением транзакцией
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey struct{}

// WithExecutor кладет executor (обычно открытую транзакцию) в context
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, exec)
}

// GetExecutor возвращает executor из context, если он там есть,
// иначе переданный по умолчанию
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(ctxKey{}).(DBExecutor); ok {
		return exec
	}
	return def
}

// IsInTransaction сообщает, есть ли в context активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(DBExecutor)
	return ok
}

// MetricsCollector интерфейс сборщика метрик БД
type MetricsCollector interface {
	ObserveDBQuery(operation string, duration time.Duration)
	SetDBPoolStats(open, idle, inUse int)
}

// DB обертка над *sql.DB, записывающая длительности запросов
type DB struct {
	db      *sql.DB
	metrics MetricsCollector
}

// Wrap оборачивает *sql.DB сборщиком метрик
func Wrap(db *sql.DB, metrics MetricsCollector) *DB {
	return &DB{db: db, metrics: metrics}
}

// WrapWithDefault оборачивает *sql.DB и запускает периодический сбор
// статистики пула соединений до закрытия stopCh
func WrapWithDefault(db *sql.DB, metrics MetricsCollector, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, metrics)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.SetDBPoolStats(stats.OpenConnections, stats.Idle, stats.InUse)
		}
	}
}

// ExecContext выполняет запрос без выборки, записывая длительность
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", time.Since(start))
	return res, err
}

// QueryContext выполняет запрос с выборкой, записывая длительность
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос одной строки, записывая длительность
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", time.Since(start))
	return row
}

// BeginTx открывает транзакцию; возвращаемый executor также пишет метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &metricTx{tx: tx, metrics: d.metrics}, nil
}

// metricTx транзакция с записью метрик
type metricTx struct {
	tx      *sql.Tx
	metrics MetricsCollector
}

func (t *metricTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_exec", time.Since(start))
	return res, err
}

func (t *metricTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query", time.Since(start))
	return rows, err
}

func (t *metricTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query_row", time.Since(start))
	return row
}

func (t *metricTx) Commit() error {
	return t.tx.Commit()
}

func (t *metricTx) Rollback() error {
	return t.tx.Rollback()
}
