package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "parking_availability"

var columns = []string{
	"spot_id",
	"available_spots_two_wheeler",
	"available_spots_four_wheeler",
	"available_spots_heavy",
	"floor_availability",
	"floor_capacity",
	"last_updated",
}

// upsertSuffix перезаписывает существующую запись (инициализация = сброс к полной ёмкости)
const upsertSuffix = `ON CONFLICT (spot_id) DO UPDATE SET
	available_spots_two_wheeler = EXCLUDED.available_spots_two_wheeler,
	available_spots_four_wheeler = EXCLUDED.available_spots_four_wheeler,
	available_spots_heavy = EXCLUDED.available_spots_heavy,
	floor_availability = EXCLUDED.floor_availability,
	floor_capacity = EXCLUDED.floor_capacity,
	last_updated = EXCLUDED.last_updated`

// Repository репозиторий счётчиков доступности парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertBatch создает или перезаписывает несколько записей одним запросом
func (r *Repository) UpsertBatch(ctx context.Context, records []domain.ParkingAvailability) error {
	if len(records) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(records)
	if err != nil {
		return err
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertBatch - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetBySpotID получает запись доступности парковки
// Внутри транзакции строка блокируется (FOR UPDATE): конкурирующие транзакции ждут коммита
func (r *Repository) GetBySpotID(ctx context.Context, spotID string) (*domain.ParkingAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetQuery(spotID, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, err
	}

	a, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpotID - scan availability: %w", ErrScanRow, err)
	}

	return a, nil
}

// GetAll получает записи доступности всех парковок
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ParkingAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("spot_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ParkingAvailability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ListSpotIDs получает id парковок, для которых уже есть записи
func (r *Repository) ListSpotIDs(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("spot_id").From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpotIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListSpotIDs - scan spot_id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpotIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// ApplyUpdate записывает частичное обновление (счётчик класса, поэтажные счётчики, last_updated)
func (r *Repository) ApplyUpdate(ctx context.Context, spotID string, upd domain.AvailabilityUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpdateQuery(spotID, upd)
	if err != nil {
		return err
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyUpdate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyUpdate - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

func buildUpsertQuery(records []domain.ParkingAvailability) (string, []interface{}, error) {
	insert := psqlbuilder.Insert(table).Columns(columns...)

	for _, a := range records {
		floors, err := encodeCounts(a.FloorAvailability)
		if err != nil {
			return "", nil, err
		}
		capacity, err := encodeCounts(a.FloorCapacity)
		if err != nil {
			return "", nil, err
		}

		insert = insert.Values(
			a.SpotID,
			a.AvailableTwoWheeler,
			a.AvailableFourWheeler,
			a.AvailableHeavy,
			floors,
			capacity,
			a.LastUpdated,
		)
	}

	query, args, err := insert.Suffix(upsertSuffix).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build upsert query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func buildGetQuery(spotID string, forUpdate bool) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"spot_id": spotID})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build select query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func buildUpdateQuery(spotID string, upd domain.AvailabilityUpdate) (string, []interface{}, error) {
	column, err := counterColumn(upd.VehicleType)
	if err != nil {
		return "", nil, err
	}

	updateBuilder := psqlbuilder.Update(table).
		Set(column, upd.Count).
		Set("last_updated", upd.LastUpdated).
		Where(squirrel.Eq{"spot_id": spotID})

	if upd.FloorAvailability != nil {
		floors, err := encodeCounts(upd.FloorAvailability)
		if err != nil {
			return "", nil, err
		}
		updateBuilder = updateBuilder.Set("floor_availability", floors)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build update query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func counterColumn(vt domain.VehicleType) (string, error) {
	switch vt {
	case domain.VehicleTwoWheeler:
		return "available_spots_two_wheeler", nil
	case domain.VehicleFourWheeler:
		return "available_spots_four_wheeler", nil
	case domain.VehicleHeavy:
		return "available_spots_heavy", nil
	default:
		return "", fmt.Errorf("%w: unknown vehicle type %q", ErrBuildQuery, vt)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row rowScanner) (*domain.ParkingAvailability, error) {
	var (
		a                      domain.ParkingAvailability
		floorsRaw, capacityRaw []byte
	)

	err := row.Scan(
		&a.SpotID,
		&a.AvailableTwoWheeler,
		&a.AvailableFourWheeler,
		&a.AvailableHeavy,
		&floorsRaw,
		&capacityRaw,
		&a.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if a.FloorAvailability, err = decodeCounts(floorsRaw); err != nil {
		return nil, err
	}
	if a.FloorCapacity, err = decodeCounts(capacityRaw); err != nil {
		return nil, err
	}

	return &a, nil
}

// encodeCounts JSONB передаём строкой: []byte lib/pq отправил бы как bytea
func encodeCounts(m map[string]int) (string, error) {
	if m == nil {
		m = map[string]int{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return string(raw), nil
}

func decodeCounts(raw []byte) (map[string]int, error) {
	m := map[string]int{}
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
