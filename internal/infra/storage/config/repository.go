package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/psqlbuilder"
)

const tableName = "scheduling_config"

var columns = []string{
	"id",
	"department_id",
	"doctor_id",
	"context",
	"interval_minutes",
	"max_slots",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает конфигурацию или обновляет существующую для той же области действия
// Область действия определяется парой (department_id, doctor_id) и контекстом
func (r *Repository) Upsert(ctx context.Context, config *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	if config.DoctorID != nil && config.DepartmentID == nil {
		return nil, ErrInvalidScope
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("department_id", "doctor_id", "context", "interval_minutes", "max_slots").
		Values(config.DepartmentID, config.DoctorID, string(config.Context), config.IntervalMinutes, config.MaxSlots).
		Suffix("ON CONFLICT (COALESCE(department_id, 0), COALESCE(doctor_id, 0), context) " +
			"DO UPDATE SET interval_minutes = EXCLUDED.interval_minutes, " +
			"max_slots = EXCLUDED.max_slots, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.IsDefault = false
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SchedulingConfig, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetByScope получает конфигурацию точно для указанной области действия
// nil в departmentID или doctorID означает NULL в таблице
func (r *Repository) GetByScope(ctx context.Context, departmentID *int64, doctorID *int64, schedulingContext domain.SchedulingContext) (*domain.SchedulingConfig, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"context": string(schedulingContext)})

	// Фильтрация по department_id (NULL или конкретное значение)
	if departmentID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"department_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"department_id": *departmentID})
	}

	// Фильтрация по doctor_id (NULL или конкретное значение)
	if doctorID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *doctorID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByScope - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация врача в отделении (departmentID, doctorID)
// 2. Конфигурация всего отделения (departmentID, NULL)
// 3. Глобальная конфигурация (NULL, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, departmentID int64, doctorID *int64, schedulingContext domain.SchedulingContext) (*domain.SchedulingConfig, error) {
	// 1. Конфигурация конкретного врача
	if doctorID != nil {
		config, err := r.GetByScope(ctx, &departmentID, doctorID, schedulingContext)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (doctor): %v", ErrExecQuery, err)
		}
	}

	// 2. Конфигурация отделения
	config, err := r.GetByScope(ctx, &departmentID, nil, schedulingContext)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (department): %v", ErrExecQuery, err)
	}

	// 3. Глобальная конфигурация
	config, err = r.GetByScope(ctx, nil, nil, schedulingContext)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 3 (global): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// ListByDepartment получает конфигурации отделения, его врачей и глобальные
func (r *Repository) ListByDepartment(ctx context.Context, departmentID int64) ([]*domain.SchedulingConfig, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Or{
			squirrel.Eq{"department_id": departmentID},
			squirrel.Eq{"department_id": nil},
		}).
		OrderBy("department_id ASC NULLS FIRST", "doctor_id ASC NULLS FIRST", "context ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDepartment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDepartment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SchedulingConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDepartment - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDepartment - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row scanner) (*domain.SchedulingConfig, error) {
	var (
		config               domain.SchedulingConfig
		departmentID         sql.NullInt64
		doctorID             sql.NullInt64
		schedulingContext    string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&config.ID,
		&departmentID,
		&doctorID,
		&schedulingContext,
		&config.IntervalMinutes,
		&config.MaxSlots,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if departmentID.Valid {
		config.DepartmentID = &departmentID.Int64
	}
	if doctorID.Valid {
		config.DoctorID = &doctorID.Int64
	}
	config.Context = domain.SchedulingContext(schedulingContext)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
