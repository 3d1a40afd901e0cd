package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	catalog      CatalogProvider
	identity     IdentityProvider
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	taxRate      float64
	logger       Logger

	// idSuffix запасной суффикс кода бронирования при коллизии
	idSuffix func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	catalog CatalogProvider,
	identity IdentityProvider,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	taxRate float64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		catalog:      catalog,
		identity:     identity,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		taxRate:      taxRate,
		logger:       logger,
		idSuffix:     randomSuffix,
	}
}

// Execute выполняет use case создания бронирования
// Вставка бронирования и списание счётчика выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Пользователь
	userID, ok := uc.identity.CurrentUserID(ctx)
	if !ok || userID == "" {
		uc.logger.Warn("CreateBooking: request without authenticated user")
		return nil, ErrNotAuthenticated
	}

	uc.logger.Info("CreateBooking: user=%s, parking=%s, spot=%s, entry=%s, exit=%s",
		userID, req.ParkingID, req.SpotNumber, req.EntryTime.Format(timeLayout), req.ExitTime.Format(timeLayout))

	// 2. Валидация входных данных
	v, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Парковка из каталога (денормализация и тарифы)
	spot, ok := uc.catalog.Spot(req.ParkingID)
	if !ok {
		uc.logger.Warn("CreateBooking: parking id=%s not found in catalog", req.ParkingID)
		return nil, ErrParkingNotFound
	}

	booking := uc.buildBooking(userID, req, v, spot)

	// 4. Сериализуемая транзакция: проверка пересечений, вставка, списание счётчика
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetBySpot(txCtx, domain.BookingSpotFilter{
			ParkingID:  booking.ParkingID,
			SpotNumber: booking.SpotNumber,
			Statuses:   domain.CapacityHoldingStatuses,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get spot bookings: %w", ErrPersistenceFailure, err)
		}

		for _, b := range existing {
			if b.Overlaps(booking.EntryTime, booking.ExitTime) {
				uc.logger.Warn("CreateBooking: spot %s/%s overlaps booking id=%s", booking.ParkingID, booking.SpotNumber, b.ID)
				return ErrSpotTaken
			}
		}

		id, err := uc.reserveID(txCtx, booking.ID)
		if err != nil {
			return err
		}
		booking.ID = id

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrPersistenceFailure, err)
		}

		err = uc.availability.DecreaseInTx(txCtx, booking.ParkingID, booking.VehicleType, booking.FloorNumber)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, availability.ErrNoAvailability):
			// Записи доступности ещё нет: бронирование создаётся без списания
			uc.logger.Warn("CreateBooking: no availability record for parking id=%s, decrement skipped", booking.ParkingID)
			return nil
		case errors.Is(err, availability.ErrNoCapacity):
			return ErrNoCapacity
		default:
			return err
		}
	})
	if err != nil {
		err = uc.mapError(err)
		uc.metrics.IncBookingsCreated(resultLabel(err))
		return nil, err
	}

	uc.metrics.IncBookingsCreated("ok")
	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	return &Response{Booking: *booking}, nil
}

// buildBooking собирает бронирование: код, QR, цена, статус оплаты
func (uc *UseCase) buildBooking(userID string, req *Request, v *validated, spot domain.ParkingSpot) *domain.Booking {
	now := uc.timeProvider.Now()
	millis := strconv.FormatInt(now.UnixMilli(), 10)

	price := calculatePrice(spot, v.vehicleType, req.FloorNumber, v.hours, uc.taxRate, req.Discount)
	if req.Price != nil {
		price = *req.Price
	}

	var floorNumber *int
	floorName := ""
	if req.FloorNumber != nil {
		n := *req.FloorNumber
		floorNumber = &n
		floorName = domain.FloorName(n)
		if floor, ok := spot.FloorByNumber(n); ok && floor.Name != "" {
			floorName = floor.Name
		}
	}

	// Оплата симулируется: наличные оплачиваются на месте
	paymentStatus := domain.PaymentStatusCompleted
	var transactionID *string
	if v.paymentMethod == domain.PaymentCash {
		paymentStatus = domain.PaymentStatusPending
	} else {
		txID := "TXN" + millis
		transactionID = &txID
	}

	return &domain.Booking{
		ID:             domain.BookingIDPrefix + lastDigits(millis, 6),
		UserID:         userID,
		ParkingID:      spot.ID,
		ParkingName:    spot.Name,
		ParkingAddress: spot.Address,
		VehicleID:      req.VehicleID,
		VehicleNumber:  req.VehicleNumber,
		VehicleType:    v.vehicleType,
		FloorNumber:    floorNumber,
		FloorName:      floorName,
		SpotNumber:     req.SpotNumber,
		EntryTime:      req.EntryTime,
		ExitTime:       req.ExitTime,
		DurationHours:  v.hours,
		BasePrice:      price.BasePrice,
		TaxAmount:      price.TaxAmount,
		DiscountAmount: price.DiscountAmount,
		TotalPrice:     price.TotalPrice,
		CouponCode:     req.CouponCode,
		PaymentMethod:  v.paymentMethod,
		PaymentStatus:  paymentStatus,
		TransactionID:  transactionID,
		Status:         domain.StatusConfirmed,
		QRCodeData:     domain.QRCodePrefix + millis,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// reserveID проверяет код на занятость внутри транзакции
// Код из миллисекунд повторяется каждые 10^6 мс, поэтому при коллизии берётся случайный суффикс
func (uc *UseCase) reserveID(ctx context.Context, candidate string) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		_, err := uc.bookingRepo.GetByID(ctx, candidate)
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: failed to check booking id: %w", ErrPersistenceFailure, err)
		}

		uc.logger.Warn("CreateBooking: booking id=%s already exists, regenerating", candidate)
		candidate = domain.BookingIDPrefix + uc.idSuffix()
	}
	return "", fmt.Errorf("%w: %w after %d attempts", ErrPersistenceFailure, ErrIDExhausted, maxIDAttempts)
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, ErrSpotTaken), errors.Is(err, ErrNoCapacity):
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return err
	case errors.Is(err, bookingRepo.ErrDuplicateID):
		// Параллельная транзакция заняла тот же код между проверкой и вставкой
		uc.logger.Warn("CreateBooking: booking id race: %v", err)
		return fmt.Errorf("%w: %v", ErrTransientIO, err)
	case availability.IsTransient(err):
		uc.logger.Warn("CreateBooking: transient storage error: %v", err)
		return fmt.Errorf("%w: %v", ErrTransientIO, err)
	case errors.Is(err, ErrPersistenceFailure):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrSpotTaken):
		return "spot_taken"
	case errors.Is(err, ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, ErrTransientIO):
		return "transient"
	default:
		return "failed"
	}
}

func randomSuffix() string {
	return fmt.Sprintf("%06d", rand.Intn(1_000_000))
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

const (
	timeLayout = "2006-01-02T15:04"

	maxIDAttempts = 5
)
