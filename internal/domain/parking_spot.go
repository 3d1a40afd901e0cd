package domain

// AvailabilityStatus coarse availability shown on the map
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
	AvailabilityLimited   AvailabilityStatus = "LIMITED"
	AvailabilityFull      AvailabilityStatus = "FULL"
)

// ParkingSpot catalog entry for a parking location
// Available* fields and Floor.AvailableSpots are overlaid from ParkingAvailability at render time
type ParkingSpot struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64

	PricePerHourTwoWheeler  float64
	PricePerHourFourWheeler float64
	PricePerHourHeavy       float64
	PricePerDayTwoWheeler   float64
	PricePerDayFourWheeler  float64
	PricePerDayHeavy        float64

	TotalSpotsTwoWheeler  int
	TotalSpotsFourWheeler int
	TotalSpotsHeavy       int

	AvailableSpotsTwoWheeler  int
	AvailableSpotsFourWheeler int
	AvailableSpotsHeavy       int

	Floors         []Floor
	Amenities      []string
	Images         []string
	Rating         float64
	ReviewCount    int
	OperatingHours OperatingHours
	IsActive       bool
}

// Floor a level of a parking location
type Floor struct {
	FloorNumber     int
	Name            string
	TotalSpots      int
	AvailableSpots  int
	PriceMultiplier float64
}

// OperatingHours opening schedule, times in HH:MM
type OperatingHours struct {
	Is24Hours  bool
	OpenTime   string
	CloseTime  string
	ClosedDays []int // 0 = Sunday ... 6 = Saturday
}

// Capacities per-class totals, used to clamp releases
type Capacities struct {
	TwoWheeler  int
	FourWheeler int
	Heavy       int
}

// For returns the capacity of a vehicle class
func (c Capacities) For(vt VehicleType) int {
	switch vt {
	case VehicleTwoWheeler:
		return c.TwoWheeler
	case VehicleHeavy:
		return c.Heavy
	default:
		return c.FourWheeler
	}
}

// Capacities returns the per-class totals of the spot
func (p *ParkingSpot) Capacities() Capacities {
	return Capacities{
		TwoWheeler:  p.TotalSpotsTwoWheeler,
		FourWheeler: p.TotalSpotsFourWheeler,
		Heavy:       p.TotalSpotsHeavy,
	}
}

// AvailableFor returns the overlaid available count for a vehicle class
func (p *ParkingSpot) AvailableFor(vt VehicleType) int {
	switch vt {
	case VehicleTwoWheeler:
		return p.AvailableSpotsTwoWheeler
	case VehicleHeavy:
		return p.AvailableSpotsHeavy
	default:
		return p.AvailableSpotsFourWheeler
	}
}

// HourlyPriceFor returns the hourly price for a vehicle class
func (p *ParkingSpot) HourlyPriceFor(vt VehicleType) float64 {
	switch vt {
	case VehicleTwoWheeler:
		return p.PricePerHourTwoWheeler
	case VehicleHeavy:
		return p.PricePerHourHeavy
	default:
		return p.PricePerHourFourWheeler
	}
}

// FloorByNumber finds a floor by number
func (p *ParkingSpot) FloorByNumber(number int) (Floor, bool) {
	for _, f := range p.Floors {
		if f.FloorNumber == number {
			return f, true
		}
	}
	return Floor{}, false
}

func (p *ParkingSpot) TotalSpots() int {
	return p.TotalSpotsTwoWheeler + p.TotalSpotsFourWheeler + p.TotalSpotsHeavy
}

func (p *ParkingSpot) TotalAvailableSpots() int {
	return p.AvailableSpotsTwoWheeler + p.AvailableSpotsFourWheeler + p.AvailableSpotsHeavy
}

// AvailabilityStatus FULL when nothing is free, LIMITED below 20% free
func (p *ParkingSpot) AvailabilityStatus() AvailabilityStatus {
	total := p.TotalSpots()
	available := p.TotalAvailableSpots()

	switch {
	case available == 0:
		return AvailabilityFull
	case total > 0 && float64(available)/float64(total) < LimitedAvailabilityRatio:
		return AvailabilityLimited
	default:
		return AvailabilityAvailable
	}
}

// WithFullAvailability returns a copy with every available counter set to its total
func (p ParkingSpot) WithFullAvailability() ParkingSpot {
	p.AvailableSpotsTwoWheeler = p.TotalSpotsTwoWheeler
	p.AvailableSpotsFourWheeler = p.TotalSpotsFourWheeler
	p.AvailableSpotsHeavy = p.TotalSpotsHeavy

	floors := make([]Floor, len(p.Floors))
	for i, f := range p.Floors {
		f.AvailableSpots = f.TotalSpots
		floors[i] = f
	}
	p.Floors = floors

	return p
}
