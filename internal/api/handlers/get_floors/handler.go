package get_floors

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	getFloors "github.com/m04kA/SMC-ParkingService/internal/usecase/get_floors_with_spots"
)

const (
	msgInvalidVehicleType = "некорректный тип транспортного средства"
	msgParkingNotFound    = "парковка не найдена"
)

type Handler struct {
	useCase GetFloorsUseCase
	logger  Logger
}

func NewHandler(useCase GetFloorsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/parking-spots/{parkingId}/floors
// Query params: vehicleType (optional, default FOUR_WHEELER)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parkingID := mux.Vars(r)["parkingId"]

	result, err := h.useCase.Execute(r.Context(), &getFloors.Request{
		ParkingID:   parkingID,
		VehicleType: r.URL.Query().Get("vehicleType"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getFloors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidVehicleType)

		case errors.Is(err, getFloors.ErrParkingNotFound):
			h.logger.Warn("GET /parking-spots/{id}/floors - Parking not found: parking_id=%s", parkingID)
			handlers.RespondNotFound(w, msgParkingNotFound)

		default:
			h.logger.Error("GET /parking-spots/{id}/floors - Failed to build floors: parking_id=%s, error=%v", parkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parking-spots/{id}/floors - Floors retrieved: parking_id=%s, floors=%d", parkingID, len(result.Floors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
