package create_booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type staticIdentity string

func (s staticIdentity) CurrentUserID(context.Context) (string, bool) {
	return string(s), s != ""
}

var testParking = domain.ParkingSpot{
	ID:                      "ps_001",
	Name:                    "Phoenix Mall Parking",
	Address:                 "Viman Nagar, Pune",
	PricePerHourTwoWheeler:  20,
	PricePerHourFourWheeler: 50,
	PricePerHourHeavy:       100,
	TotalSpotsTwoWheeler:    10,
	TotalSpotsFourWheeler:   1,
	TotalSpotsHeavy:         1,
	Floors: []domain.Floor{
		{FloorNumber: 1, Name: "1st Floor", TotalSpots: 8, PriceMultiplier: 1},
		{FloorNumber: 2, Name: "Premium Deck", TotalSpots: 4, PriceMultiplier: 1.5},
	},
}

type testEnv struct {
	bookings     *memstore.BookingStore
	availability *memstore.AvailabilityStore
	clock        *memstore.Clock
	catalog      memstore.Catalog
	txManager    *memstore.TxManager
	availSvc     *availability.Service
}

func newTestEnv(t *testing.T, initialize bool) *testEnv {
	t.Helper()
	env := &testEnv{
		bookings:     memstore.NewBookingStore(),
		availability: memstore.NewAvailabilityStore(),
		clock:        memstore.NewClock(time.Date(2026, 3, 1, 9, 30, 0, 123_000_000, time.UTC)),
		catalog:      memstore.Catalog{testParking.ID: testParking},
	}
	env.txManager = memstore.NewTxManager(env.bookings, env.availability)
	env.availSvc = availability.NewService(env.availability, env.txManager, memstore.NopFeed{}, memstore.NopMetrics{}, env.clock, memstore.NopLogger{})
	if initialize {
		require.NoError(t, env.availSvc.Initialize(context.Background(), testParking))
	}
	return env
}

func (e *testEnv) useCase(user string) *UseCase {
	return NewUseCase(e.bookings, e.availSvc, e.catalog, staticIdentity(user), e.txManager, memstore.NopMetrics{}, e.clock, domain.DefaultTaxRate, memstore.NopLogger{})
}

func validRequest(entry time.Time) *Request {
	return &Request{
		ParkingID:     testParking.ID,
		VehicleID:     "veh-1",
		VehicleNumber: "MH12AB1234",
		VehicleType:   string(domain.VehicleFourWheeler),
		FloorNumber:   ptr.Ptr(1),
		SpotNumber:    "A01",
		EntryTime:     entry,
		ExitTime:      entry.Add(2 * time.Hour),
		PaymentMethod: string(domain.PaymentUPI),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv(t, true)
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	resp, err := env.useCase("user-1").Execute(context.Background(), validRequest(entry))
	require.NoError(t, err)

	b := resp.Booking
	assert.Regexp(t, regexp.MustCompile(`^PK\d{6}$`), b.ID)
	assert.Equal(t, "PK400123", b.ID)
	assert.Equal(t, "PARKOVER-1772357400123", b.QRCodeData)
	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, "Phoenix Mall Parking", b.ParkingName)
	assert.Equal(t, "1st Floor", b.FloorName)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, b.PaymentStatus)
	require.NotNil(t, b.TransactionID)
	assert.Equal(t, 2, b.DurationHours)
	assert.Equal(t, 100.0, b.BasePrice)
	assert.Equal(t, 10.0, b.TaxAmount)
	assert.Equal(t, 110.0, b.TotalPrice)
	assert.Equal(t, env.clock.Now(), b.CreatedAt)

	stored, err := env.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.ID)

	rec := env.availability.Record(testParking.ID)
	assert.Equal(t, 0, rec.AvailableFourWheeler)
	assert.Equal(t, 7, rec.FloorAvailability["1"])
}

func TestUseCase_Execute_CashAndFloorMultiplier(t *testing.T) {
	env := newTestEnv(t, true)
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := validRequest(entry)
	req.VehicleType = string(domain.VehicleTwoWheeler)
	req.FloorNumber = ptr.Ptr(2)
	req.PaymentMethod = string(domain.PaymentCash)
	req.ExitTime = entry.Add(150 * time.Minute)
	req.Discount = 5

	resp, err := env.useCase("user-1").Execute(context.Background(), req)
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.PaymentStatusPending, b.PaymentStatus)
	assert.Nil(t, b.TransactionID)
	assert.Equal(t, "Premium Deck", b.FloorName)
	// 20 × 1.5 × 3 часа (округление вверх)
	assert.Equal(t, 3, b.DurationHours)
	assert.Equal(t, 90.0, b.BasePrice)
	assert.Equal(t, 9.0, b.TaxAmount)
	assert.Equal(t, 5.0, b.DiscountAmount)
	assert.Equal(t, 94.0, b.TotalPrice)

	assert.Equal(t, 9, env.availability.Record(testParking.ID).AvailableTwoWheeler)
}

func TestUseCase_Execute_ExplicitPrice(t *testing.T) {
	env := newTestEnv(t, true)
	req := validRequest(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	req.Price = &PriceInfo{BasePrice: 80, TaxAmount: 8, TotalPrice: 88}

	resp, err := env.useCase("user-1").Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 88.0, resp.Booking.TotalPrice)
}

func TestUseCase_Execute_NotAuthenticated(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := env.useCase("").Execute(context.Background(), validRequest(env.clock.Now()))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, env.bookings.Len())
}

func TestUseCase_Execute_WithoutAvailabilityRecord(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.useCase("user-1").Execute(context.Background(), validRequest(env.clock.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, 1, env.bookings.Len())
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
}

func TestUseCase_Execute_NoCapacityRollsBack(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := env.useCase("user-1").Execute(ctx, validRequest(entry))
	require.NoError(t, err)

	// Единственное место для легковых уже занято; другое место, то же время
	env.clock.Advance(time.Second)
	req := validRequest(entry)
	req.SpotNumber = "A02"
	_, err = env.useCase("user-2").Execute(ctx, req)
	assert.ErrorIs(t, err, ErrNoCapacity)

	// Вставка откатилась вместе с транзакцией
	assert.Equal(t, 1, env.bookings.Len())
	assert.Equal(t, 0, env.availability.Record(testParking.ID).AvailableFourWheeler)
}

func TestUseCase_Execute_SpotConflicts(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := validRequest(entry)
	req.VehicleType = string(domain.VehicleTwoWheeler)
	_, err := env.useCase("user-1").Execute(ctx, req)
	require.NoError(t, err)

	env.clock.Advance(time.Second)
	overlapping := validRequest(entry.Add(time.Hour))
	overlapping.VehicleType = string(domain.VehicleTwoWheeler)
	_, err = env.useCase("user-2").Execute(ctx, overlapping)
	assert.ErrorIs(t, err, ErrSpotTaken)

	// Окно встык не пересекается
	env.clock.Advance(time.Second)
	backToBack := validRequest(entry.Add(2 * time.Hour))
	backToBack.VehicleType = string(domain.VehicleTwoWheeler)
	_, err = env.useCase("user-2").Execute(ctx, backToBack)
	require.NoError(t, err)

	assert.Equal(t, 2, env.bookings.Len())
	assert.Equal(t, 8, env.availability.Record(testParking.ID).AvailableTwoWheeler)
}

func TestUseCase_Execute_IDRepeatsAfterMillisWrap(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	first := validRequest(entry)
	first.VehicleType = string(domain.VehicleTwoWheeler)
	resp, err := env.useCase("user-1").Execute(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "PK400123", resp.Booking.ID)

	// Через 10^6 мс последние шесть цифр совпадают
	env.clock.Advance(1_000_000 * time.Millisecond)
	second := validRequest(entry.Add(24 * time.Hour))
	second.VehicleType = string(domain.VehicleTwoWheeler)
	second.SpotNumber = "A02"

	uc := env.useCase("user-2")
	uc.idSuffix = func() string { return "777777" }
	resp, err = uc.Execute(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "PK777777", resp.Booking.ID)

	assert.Equal(t, 2, env.bookings.Len())
	stored, err := env.bookings.GetByID(ctx, "PK400123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, 8, env.availability.Record(testParking.ID).AvailableTwoWheeler)
}

func TestUseCase_Execute_IDExhausted(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := validRequest(entry)
	req.VehicleType = string(domain.VehicleTwoWheeler)
	_, err := env.useCase("user-1").Execute(ctx, req)
	require.NoError(t, err)

	env.clock.Advance(1_000_000 * time.Millisecond)
	req = validRequest(entry.Add(24 * time.Hour))
	req.VehicleType = string(domain.VehicleTwoWheeler)

	uc := env.useCase("user-2")
	uc.idSuffix = func() string { return "400123" }
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, 1, env.bookings.Len())
	assert.Equal(t, 9, env.availability.Record(testParking.ID).AvailableTwoWheeler)
}

func TestRandomSuffix(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), randomSuffix())
	}
}

func TestUseCase_Execute_WithoutFloor(t *testing.T) {
	env := newTestEnv(t, true)
	req := validRequest(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	req.FloorNumber = nil

	resp, err := env.useCase("user-1").Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Booking.FloorNumber)
	assert.Empty(t, resp.Booking.FloorName)

	rec := env.availability.Record(testParking.ID)
	assert.Equal(t, 0, rec.AvailableFourWheeler)
	assert.Equal(t, 8, rec.FloorAvailability["1"])
	assert.Equal(t, 4, rec.FloorAvailability["2"])
}

func TestUseCase_Execute_Validation(t *testing.T) {
	entry := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing parking", mutate: func(r *Request) { r.ParkingID = "" }, wantErr: ErrInvalidInput},
		{name: "missing spot", mutate: func(r *Request) { r.SpotNumber = "" }, wantErr: ErrInvalidInput},
		{name: "unknown vehicle type", mutate: func(r *Request) { r.VehicleType = "TRUCK" }, wantErr: ErrInvalidInput},
		{name: "unknown payment", mutate: func(r *Request) { r.PaymentMethod = "BARTER" }, wantErr: ErrInvalidInput},
		{name: "exit before entry", mutate: func(r *Request) { r.ExitTime = r.EntryTime.Add(-time.Hour) }, wantErr: ErrInvalidInput},
		{name: "longer than a day", mutate: func(r *Request) { r.ExitTime = r.EntryTime.Add(25 * time.Hour) }, wantErr: ErrInvalidInput},
		{name: "negative discount", mutate: func(r *Request) { r.Discount = -1 }, wantErr: ErrInvalidInput},
		{name: "unknown parking", mutate: func(r *Request) { r.ParkingID = "ps_404" }, wantErr: ErrParkingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			req := validRequest(entry)
			tt.mutate(req)

			_, err := env.useCase("user-1").Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, env.bookings.Len())
		})
	}
}
