package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ParkingID     string     // ID парковки из каталога
	VehicleID     string     // ID автомобиля пользователя
	VehicleNumber string     // Госномер
	VehicleType   string     // TWO_WHEELER | FOUR_WHEELER | HEAVY
	FloorNumber   *int       // Этаж (опционально)
	SpotNumber    string     // Место, например A01
	EntryTime     time.Time  // Начало брони
	ExitTime      time.Time  // Конец брони (не включительно)
	PaymentMethod string     // UPI | NET_BANKING | CARD | CASH
	CouponCode    *string    // Промокод (опционально)
	Discount      float64    // Скидка
	Price         *PriceInfo // Готовая разбивка цены; nil - считаем по тарифу
}

// PriceInfo разбивка цены
type PriceInfo struct {
	BasePrice      float64
	TaxAmount      float64
	DiscountAmount float64
	TotalPrice     float64
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking domain.Booking
}
