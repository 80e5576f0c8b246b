package center

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/GSC-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сервисными центрами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сервисных центров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var centerColumns = []string{
	"id",
	"name",
	"city",
	"address",
	"working_days",
	"work_start",
	"work_end",
	"slot_duration_minutes",
	"capacity_per_slot",
	"is_active",
	"created_at",
	"updated_at",
}

// GetByID получает сервисный центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centerColumns...).
		From("service_centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCenter(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan center: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListActive получает все активные сервисные центры
// Используется ежедневной генерацией слотов для обхода всех центров
func (r *Repository) ListActive(ctx context.Context) ([]*domain.ServiceCenter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centerColumns...).
		From("service_centers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	centers := make([]*domain.ServiceCenter, 0)
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan center: %v", ErrScanRow, err)
		}
		centers = append(centers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - iterate rows: %v", ErrScanRow, err)
	}

	return centers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCenter(row rowScanner) (*domain.ServiceCenter, error) {
	var c domain.ServiceCenter
	var workingDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.City,
		&c.Address,
		&workingDays,
		&c.WorkStart,
		&c.WorkEnd,
		&c.SlotDurationMinutes,
		&c.CapacityPerSlot,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.WorkingDays = make([]int, 0, len(workingDays))
	for _, d := range workingDays {
		c.WorkingDays = append(c.WorkingDays, int(d))
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
