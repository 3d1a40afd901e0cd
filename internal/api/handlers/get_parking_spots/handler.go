package get_parking_spots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgInvalidCoordinates = "некорректные координаты: lat и lon задаются вместе"
	msgInvalidRadius      = "некорректный радиус поиска"
	msgParkingNotFound    = "парковка не найдена"
)

type Handler struct {
	projector Projector
	logger    Logger
}

func NewHandler(projector Projector, logger Logger) *Handler {
	return &Handler{
		projector: projector,
		logger:    logger,
	}
}

// List GET /api/v1/parking-spots
// Query params: lat, lon (optional, together), radiusKm (optional, default 5)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	latStr, lonStr := query.Get("lat"), query.Get("lon")

	if latStr == "" && lonStr == "" {
		spots := h.projector.Snapshot()
		handlers.RespondJSON(w, http.StatusOK, FromDomainList(spots))
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		h.logger.Warn("GET /parking-spots - Invalid coordinates: lat=%q, lon=%q", latStr, lonStr)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	radius := domain.DefaultSearchKm
	if radiusStr := query.Get("radiusKm"); radiusStr != "" {
		v, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || v <= 0 {
			handlers.RespondBadRequest(w, msgInvalidRadius)
			return
		}
		radius = v
	}

	nearby := h.projector.NearLocation(lat, lon, radius)
	h.logger.Info("GET /parking-spots - Near location: lat=%.5f, lon=%.5f, radius=%.1f, found=%d", lat, lon, radius, len(nearby))
	handlers.RespondJSON(w, http.StatusOK, FromNearby(nearby))
}

// Get GET /api/v1/parking-spots/{parkingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	parkingID := mux.Vars(r)["parkingId"]

	spot, ok := h.projector.Spot(parkingID)
	if !ok {
		handlers.RespondNotFound(w, msgParkingNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSpot(spot))
}
