package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ParkingID     string     `json:"parkingId"`
	VehicleID     string     `json:"vehicleId"`
	VehicleNumber string     `json:"vehicleNumber"`
	VehicleType   string     `json:"vehicleType"`
	FloorNumber   *int       `json:"floorNumber,omitempty"`
	SpotNumber    string     `json:"spotNumber"`
	EntryTime     string     `json:"entryTime"` // RFC3339
	ExitTime      string     `json:"exitTime"`  // RFC3339
	PaymentMethod string     `json:"paymentMethod"`
	CouponCode    *string    `json:"couponCode,omitempty"`
	Discount      float64    `json:"discount"`
	Price         *PriceInfo `json:"price,omitempty"`
}

// PriceInfo разбивка цены, посчитанная клиентом
type PriceInfo struct {
	BasePrice      float64 `json:"basePrice"`
	TaxAmount      float64 `json:"taxAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalPrice     float64 `json:"totalPrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	entry, err := time.Parse(time.RFC3339, r.EntryTime)
	if err != nil {
		return nil, err
	}

	exit, err := time.Parse(time.RFC3339, r.ExitTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		ParkingID:     r.ParkingID,
		VehicleID:     r.VehicleID,
		VehicleNumber: r.VehicleNumber,
		VehicleType:   r.VehicleType,
		FloorNumber:   r.FloorNumber,
		SpotNumber:    r.SpotNumber,
		EntryTime:     entry,
		ExitTime:      exit,
		PaymentMethod: r.PaymentMethod,
		CouponCode:    r.CouponCode,
		Discount:      r.Discount,
	}

	if r.Price != nil {
		req.Price = &createBooking.PriceInfo{
			BasePrice:      r.Price.BasePrice,
			TaxAmount:      r.Price.TaxAmount,
			DiscountAmount: r.Price.DiscountAmount,
			TotalPrice:     r.Price.TotalPrice,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(&resp.Booking)
}
