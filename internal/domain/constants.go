package domain

// Booking constants
const (
	BookingIDPrefix          = "PK"
	QRCodePrefix             = "PARKOVER-"
	DefaultTaxRate           = 0.10
	MinBookingHours          = 1
	MaxBookingHours          = 24
	DefaultSearchKm          = 5.0
	EarthRadiusKm            = 6371.0
	LimitedAvailabilityRatio = 0.2
)

// Floor grid layout
const (
	SpotsPerRow = 2

	SyntheticFloorCount    = 3
	SyntheticRowsPerFloor  = 6
	SyntheticOccupiedEvery = 3
)

// CapacityHoldingStatuses statuses that reserve a counter and count toward conflicts
var CapacityHoldingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
}

// OngoingStatuses statuses shown in the "ongoing" tab
var OngoingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusActive,
}

// HistoryStatuses statuses shown in the "history" tab
var HistoryStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
