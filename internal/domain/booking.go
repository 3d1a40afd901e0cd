package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"   // created, payment pending
	StatusConfirmed BookingStatus = "CONFIRMED" // paid, waiting for entry
	StatusActive    BookingStatus = "ACTIVE"    // currently parked
	StatusCompleted BookingStatus = "COMPLETED" // exited
	StatusCancelled BookingStatus = "CANCELLED"
	StatusExpired   BookingStatus = "EXPIRED" // never confirmed
)

// PaymentMethod simulated payment method
type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "NET_BANKING"
	PaymentCard       PaymentMethod = "CARD"
	PaymentCash       PaymentMethod = "CASH" // pay at parking
)

// PaymentStatus status of the (simulated) payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// Booking a reservation of a spot for [EntryTime, ExitTime)
// Bookings are never deleted, only status-transitioned
type Booking struct {
	ID     string // short human-readable code, e.g. PK123456
	UserID string

	// Denormalized data for history
	ParkingID      string
	ParkingName    string
	ParkingAddress string
	VehicleID      string
	VehicleNumber  string
	VehicleType    VehicleType

	FloorNumber *int // nil: no floor counter was reserved
	FloorName   string
	SpotNumber  string

	EntryTime     time.Time
	ExitTime      time.Time
	DurationHours int

	BasePrice      float64
	TaxAmount      float64
	DiscountAmount float64
	TotalPrice     float64
	CouponCode     *string
	ExtraCharges   float64 // overstay

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	TransactionID *string

	Status         BookingStatus
	QRCodeData     string
	ActualExitTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// bookingTransitions allowed status transitions
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
}

// CanTransitionTo returns true if the status may move to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HoldsCapacity returns true if the booking counts toward conflicts and holds a counter decrement
func (b *Booking) HoldsCapacity() bool {
	return IsCapacityHolding(b.Status)
}

// IsCapacityHolding true for CONFIRMED and ACTIVE
func IsCapacityHolding(status BookingStatus) bool {
	return status == StatusConfirmed || status == StatusActive
}

// ReleasesCapacity returns true if moving to next must give the counter back
func (b *Booking) ReleasesCapacity(next BookingStatus) bool {
	return b.HoldsCapacity() && (next == StatusCompleted || next == StatusCancelled)
}

// Overlaps half-open interval test: [checkIn, checkOut) vs [EntryTime, ExitTime)
// Back-to-back windows do not overlap
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.ExitTime) && checkOut.After(b.EntryTime)
}

// IsOngoing returns true if the booking is upcoming or in progress
func (b *Booking) IsOngoing(now time.Time) bool {
	return b.Status == StatusConfirmed ||
		(b.Status == StatusActive && now.Before(b.ExitTime))
}

// IsPast returns true if the booking is finished
func (b *Booking) IsPast() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range []BookingStatus{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled, StatusExpired} {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ParsePaymentMethod validates a raw payment method string
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, pm := range []PaymentMethod{PaymentUPI, PaymentNetBanking, PaymentCard, PaymentCash} {
		if string(pm) == s {
			return pm, true
		}
	}
	return "", false
}

// BookingSpotFilter bookings of one physical spot
type BookingSpotFilter struct {
	ParkingID  string
	SpotNumber string
	Statuses   []BookingStatus
}

// UserBookingsFilter bookings of a user
type UserBookingsFilter struct {
	UserID   string
	Statuses []BookingStatus
	OrderBy  string // column, ASC/DESC included
}
