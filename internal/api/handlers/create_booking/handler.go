package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgNotAuthenticated   = "пользователь не аутентифицирован"
	msgParkingNotFound    = "парковка не найдена"
	msgSpotTaken          = "место уже забронировано на выбранное время"
	msgNoCapacity         = "свободных мест нет"
	msgTryAgain           = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNotAuthenticated):
			handlers.RespondUnauthorized(w, msgNotAuthenticated)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrParkingNotFound):
			h.logger.Warn("POST /bookings - Parking not found: parking_id=%s", req.ParkingID)
			handlers.RespondNotFound(w, msgParkingNotFound)

		case errors.Is(err, createBooking.ErrSpotTaken):
			h.logger.Warn("POST /bookings - Spot taken: parking_id=%s, spot=%s", req.ParkingID, req.SpotNumber)
			handlers.RespondConflict(w, msgSpotTaken)

		case errors.Is(err, createBooking.ErrNoCapacity):
			h.logger.Warn("POST /bookings - No capacity: parking_id=%s, vehicle_type=%s", req.ParkingID, req.VehicleType)
			handlers.RespondConflict(w, msgNoCapacity)

		case errors.Is(err, createBooking.ErrTransientIO):
			h.logger.Warn("POST /bookings - Transient error: parking_id=%s, error=%v", req.ParkingID, err)
			handlers.RespondServiceUnavailable(w, msgTryAgain)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: parking_id=%s, error=%v", req.ParkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, parking_id=%s",
		result.Booking.ID, result.Booking.ParkingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
