package vehicle

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "vehicles"

var columns = []string{
	"id",
	"user_id",
	"type",
	"number",
	"brand",
	"model",
	"color",
	"photo_url",
	"is_default",
	"is_preset",
}

// Repository репозиторий автомобилей пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByUser получает автомобили пользователя (сначала автомобиль по умолчанию)
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("is_default DESC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		var (
			v        domain.Vehicle
			photoURL sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.Type, &v.Number, &v.Brand, &v.Model, &v.Color, &photoURL, &v.IsDefault, &v.IsPreset); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %w", ErrScanRow, err)
		}
		if photoURL.Valid {
			v.PhotoURL = &photoURL.String
		}
		vehicles = append(vehicles, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %w", ErrScanRow, err)
	}

	return vehicles, nil
}

// Create добавляет автомобиль
func (r *Repository) Create(ctx context.Context, v *domain.Vehicle, createdAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(append(columns, "created_at")...).
		Values(v.ID, v.UserID, v.Type, v.Number, v.Brand, v.Model, v.Color, v.PhotoURL, v.IsDefault, v.IsPreset, createdAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет автомобиль пользователя
func (r *Repository) Delete(ctx context.Context, userID, vehicleID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": vehicleID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Delete", query, args)
}

// SetDefault делает автомобиль автомобилем по умолчанию, снимая флаг с остальных
// Вызывается внутри транзакции
func (r *Repository) SetDefault(ctx context.Context, userID, vehicleID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_default", squirrel.Expr("(id = ?)", vehicleID)).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetDefault - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "SetDefault", query, args)
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}
