package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Scope вкладка списка бронирований
const (
	ScopeOngoing = "ongoing"
	ScopeHistory = "history"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string `json:"-"`
	Scope  string `json:"scope"` // ongoing | history
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	ParkingID      string  `json:"parkingId"`
	ParkingName    string  `json:"parkingName"`
	ParkingAddress string  `json:"parkingAddress"`
	VehicleID      string  `json:"vehicleId"`
	VehicleNumber  string  `json:"vehicleNumber"`
	VehicleType    string  `json:"vehicleType"`
	FloorNumber    *int    `json:"floorNumber,omitempty"`
	FloorName      string  `json:"floorName"`
	SpotNumber     string  `json:"spotNumber"`
	EntryTime      string  `json:"entryTime"` // RFC3339
	ExitTime       string  `json:"exitTime"`  // RFC3339
	DurationHours  int     `json:"durationHours"`
	BasePrice      float64 `json:"basePrice"`
	TaxAmount      float64 `json:"taxAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalPrice     float64 `json:"totalPrice"`
	CouponCode     *string `json:"couponCode,omitempty"`
	ExtraCharges   float64 `json:"extraCharges"`
	PaymentMethod  string  `json:"paymentMethod"`
	PaymentStatus  string  `json:"paymentStatus"`
	TransactionID  *string `json:"transactionId,omitempty"`
	BookingStatus  string  `json:"bookingStatus"`
	QRCodeData     string  `json:"qrCodeData"`
	ActualExitTime *string `json:"actualExitTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		ParkingID:      b.ParkingID,
		ParkingName:    b.ParkingName,
		ParkingAddress: b.ParkingAddress,
		VehicleID:      b.VehicleID,
		VehicleNumber:  b.VehicleNumber,
		VehicleType:    string(b.VehicleType),
		FloorNumber:    b.FloorNumber,
		FloorName:      b.FloorName,
		SpotNumber:     b.SpotNumber,
		EntryTime:      b.EntryTime.Format(time.RFC3339),
		ExitTime:       b.ExitTime.Format(time.RFC3339),
		DurationHours:  b.DurationHours,
		BasePrice:      b.BasePrice,
		TaxAmount:      b.TaxAmount,
		DiscountAmount: b.DiscountAmount,
		TotalPrice:     b.TotalPrice,
		CouponCode:     b.CouponCode,
		ExtraCharges:   b.ExtraCharges,
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		TransactionID:  b.TransactionID,
		BookingStatus:  string(b.Status),
		QRCodeData:     b.QRCodeData,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.ActualExitTime != nil {
		exit := b.ActualExitTime.Format(time.RFC3339)
		resp.ActualExitTime = &exit
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
