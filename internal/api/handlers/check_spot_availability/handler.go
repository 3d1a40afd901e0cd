package check_spot_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	checkSpot "github.com/m04kA/SMC-ParkingService/internal/usecase/check_spot_availability"
)

const (
	msgInvalidTime = "некорректный формат checkIn/checkOut, ожидается RFC3339"
	msgInvalidData = "некорректные параметры запроса"
	msgUnavailable = "не удалось проверить доступность места"
)

// SpotAvailabilityResponse HTTP response model
type SpotAvailabilityResponse struct {
	ParkingID            string  `json:"parkingId"`
	SpotNumber           string  `json:"spotNumber"`
	Available            bool    `json:"available"`
	ConflictingBookingID *string `json:"conflictingBookingId,omitempty"`
	Degraded             bool    `json:"degraded,omitempty"`
}

type Handler struct {
	useCase CheckSpotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSpotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/parking-spots/{parkingId}/spots/{spotNumber}/availability
// Query params: checkIn, checkOut (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	parkingID := vars["parkingId"]
	spotNumber := vars["spotNumber"]

	query := r.URL.Query()
	checkIn, err := time.Parse(time.RFC3339, query.Get("checkIn"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	checkOut, err := time.Parse(time.RFC3339, query.Get("checkOut"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkSpot.Request{
		ParkingID:  parkingID,
		SpotNumber: spotNumber,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkSpot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, checkSpot.ErrPersistenceFailure):
			h.logger.Warn("GET /parking-spots/{id}/spots/{spot}/availability - Check failed: parking_id=%s, spot=%s", parkingID, spotNumber)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /parking-spots/{id}/spots/{spot}/availability - Unexpected error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SpotAvailabilityResponse{
		ParkingID:            parkingID,
		SpotNumber:           spotNumber,
		Available:            result.Available,
		ConflictingBookingID: result.ConflictingBookingID,
		Degraded:             result.Degraded,
	})
}
