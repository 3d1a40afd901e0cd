package vehicles

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	vehiclesService "github.com/m04kA/SMC-ParkingService/internal/service/vehicles"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVehicleNotFound    = "автомобиль не найден"
)

type Handler struct {
	service VehicleService
	logger  Logger
}

func NewHandler(service VehicleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/users/me/vehicles
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/vehicles - Failed to list vehicles: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Add POST /api/v1/users/me/vehicles
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/me/vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Add(r.Context(), &req)
	if err != nil {
		if errors.Is(err, vehiclesService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /users/me/vehicles - Failed to add vehicle: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /users/me/vehicles - Vehicle added: vehicle_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/users/me/vehicles/{vehicleId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "DELETE /users/me/vehicles/{id}", h.service.Delete)
}

// SetDefault PUT /api/v1/users/me/vehicles/{vehicleId}/default
func (h *Handler) SetDefault(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "PUT /users/me/vehicles/{id}/default", h.service.SetDefault)
}

// Presets GET /api/v1/vehicles/presets
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Presets(r.Context()))
}

func (h *Handler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	op func(ctx context.Context, userID, vehicleID string) error,
) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	vehicleID := mux.Vars(r)["vehicleId"]

	if err := op(r.Context(), userID, vehicleID); err != nil {
		if errors.Is(err, vehiclesService.ErrVehicleNotFound) {
			handlers.RespondNotFound(w, msgVehicleNotFound)
			return
		}
		h.logger.Error("%s - Failed: vehicle_id=%s, user_id=%s, error=%v", route, vehicleID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Done: vehicle_id=%s, user_id=%s", route, vehicleID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
