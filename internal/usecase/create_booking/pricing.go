package create_booking

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// durationHours длительность в часах с округлением вверх
func durationHours(entry, exit time.Time) int {
	return int(math.Ceil(exit.Sub(entry).Hours()))
}

// calculatePrice базовая цена = тариф класса × множитель этажа × часы, налог от базы
func calculatePrice(spot domain.ParkingSpot, vt domain.VehicleType, floorNumber *int, hours int, taxRate, discount float64) PriceInfo {
	multiplier := 1.0
	if floorNumber != nil {
		if floor, ok := spot.FloorByNumber(*floorNumber); ok && floor.PriceMultiplier > 0 {
			multiplier = floor.PriceMultiplier
		}
	}

	base := roundMoney(spot.HourlyPriceFor(vt) * multiplier * float64(hours))
	tax := roundMoney(base * taxRate)
	discount = math.Min(discount, base+tax)

	return PriceInfo{
		BasePrice:      base,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TotalPrice:     roundMoney(base + tax - discount),
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
