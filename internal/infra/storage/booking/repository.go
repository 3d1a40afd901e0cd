package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const (
	table = "bookings"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"parking_id",
	"parking_name",
	"parking_address",
	"vehicle_id",
	"vehicle_number",
	"vehicle_type",
	"floor_number",
	"floor_name",
	"spot_number",
	"entry_time",
	"exit_time",
	"duration_hours",
	"base_price",
	"tax_amount",
	"discount_amount",
	"total_price",
	"coupon_code",
	"extra_charges",
	"payment_method",
	"payment_status",
	"transaction_id",
	"booking_status",
	"qr_code_data",
	"actual_exit_time",
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

// Create создает новое бронирование
// Если в контексте передана активная транзакция, вставка выполняется в ней
// (создание бронирования и списание счётчика доступности - одна транзакция)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			booking.ID,
			booking.UserID,
			booking.ParkingID,
			booking.ParkingName,
			booking.ParkingAddress,
			booking.VehicleID,
			booking.VehicleNumber,
			booking.VehicleType,
			booking.FloorNumber,
			booking.FloorName,
			booking.SpotNumber,
			booking.EntryTime,
			booking.ExitTime,
			booking.DurationHours,
			booking.BasePrice,
			booking.TaxAmount,
			booking.DiscountAmount,
			booking.TotalPrice,
			booking.CouponCode,
			booking.ExtraCharges,
			booking.PaymentMethod,
			booking.PaymentStatus,
			booking.TransactionID,
			booking.Status,
			booking.QRCodeData,
			booking.ActualExitTime,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, booking.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) - используется при смене статуса
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetBySpot получает бронирования конкретного места (parking_id + spot_number)
// Используется для проверки пересечений по времени
func (r *Repository) GetBySpot(ctx context.Context, filter domain.BookingSpotFilter) ([]*domain.Booking, error) {
	query, args, err := buildSpotQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "GetBySpot", query, args)
}

// GetByParking получает бронирования парковки с указанными статусами
// floorNumber = nil - все этажи
func (r *Repository) GetByParking(ctx context.Context, parkingID string, floorNumber *int, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"parking_id": parkingID}).
		Where(squirrel.Eq{"booking_status": statusStrings(statuses)}).
		OrderBy("floor_number ASC", "spot_number ASC")

	if floorNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"floor_number": *floorNumber})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParking - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByParking", query, args)
}

// GetByUser получает бронирования пользователя с фильтром по статусам
func (r *Repository) GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	query, args, err := buildUserQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "GetByUser", query, args)
}

// UpdateStatus обновляет статус бронирования
// actualExitTime проставляется при завершении
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time, actualExitTime *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("booking_status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id})

	if actualExitTime != nil {
		updateBuilder = updateBuilder.Set("actual_exit_time", *actualExitTime)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

func buildSpotQuery(filter domain.BookingSpotFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"parking_id": filter.ParkingID}).
		Where(squirrel.Eq{"spot_number": filter.SpotNumber}).
		OrderBy("entry_time ASC")

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build spot query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func buildUserQuery(filter domain.UserBookingsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": filter.UserID})

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": statusStrings(filter.Statuses)})
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	selectBuilder = selectBuilder.OrderBy(orderBy)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: build user query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		couponCode, txID     sql.NullString
		floorNumber          sql.NullInt64
		actualExitTime       sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ParkingID,
		&b.ParkingName,
		&b.ParkingAddress,
		&b.VehicleID,
		&b.VehicleNumber,
		&b.VehicleType,
		&floorNumber,
		&b.FloorName,
		&b.SpotNumber,
		&b.EntryTime,
		&b.ExitTime,
		&b.DurationHours,
		&b.BasePrice,
		&b.TaxAmount,
		&b.DiscountAmount,
		&b.TotalPrice,
		&couponCode,
		&b.ExtraCharges,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&txID,
		&b.Status,
		&b.QRCodeData,
		&actualExitTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if couponCode.Valid {
		b.CouponCode = &couponCode.String
	}
	if floorNumber.Valid {
		n := int(floorNumber.Int64)
		b.FloorNumber = &n
	}
	if txID.Valid {
		b.TransactionID = &txID.String
	}
	if actualExitTime.Valid {
		t := actualExitTime.Time
		b.ActualExitTime = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
