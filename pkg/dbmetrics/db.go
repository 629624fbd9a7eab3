package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// DBExecutor общий интерфейс для *sql.DB и *DB
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Collector интерфейс для сбора метрик базы данных
type Collector interface {
	ObserveDBQuery(operation, status string, duration time.Duration)
	SetDBConnections(open, inUse, idle int)
}

// DB обертка над *sql.DB, фиксирующая длительность запросов и состояние пула
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, collector Collector) *DB {
	return &DB{db: db, collector: collector}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, collector Collector, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector)
	go wrapped.collectStats(DefaultStatsInterval, stopCh)
	return wrapped
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	started := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, err, started)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
// sql.ErrNoRows не считается ошибкой запроса
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, row.Err(), started)
	return row
}

// ExecContext выполняет запрос без возврата строк
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, err, started)
	return result, err
}

func (d *DB) observe(query string, err error, started time.Time) {
	status := "ok"
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		status = "error"
	}
	d.collector.ObserveDBQuery(Operation(query), status, time.Since(started))
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.reportStats()
	for {
		select {
		case <-ticker.C:
			d.reportStats()
		case <-stopCh:
			return
		}
	}
}

func (d *DB) reportStats() {
	stats := d.db.Stats()
	d.collector.SetDBConnections(stats.OpenConnections, stats.InUse, stats.Idle)
}

// Operation возвращает тип SQL запроса (select, insert, update, delete)
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
