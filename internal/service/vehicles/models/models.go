package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// AddVehicleRequest запрос на добавление автомобиля
type AddVehicleRequest struct {
	UserID   string  `json:"-"`
	Type     string  `json:"type"`
	Number   string  `json:"number"`
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	Color    string  `json:"color"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

// VehicleResponse ответ с данными автомобиля
type VehicleResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId,omitempty"`
	Type      string  `json:"type"`
	Number    string  `json:"number"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Color     string  `json:"color"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	IsDefault bool    `json:"isDefault"`
	IsPreset  bool    `json:"isPreset"`
}

// VehicleListResponse ответ со списком автомобилей
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// FromDomainVehicle конвертирует доменную модель в ответ
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Type:      string(v.Type),
		Number:    v.Number,
		Brand:     v.Brand,
		Model:     v.Model,
		Color:     v.Color,
		PhotoURL:  v.PhotoURL,
		IsDefault: v.IsDefault,
		IsPreset:  v.IsPreset,
	}
}

// FromDomainVehicleList конвертирует список доменных моделей в ответ
func FromDomainVehicleList(vehicles []*domain.Vehicle) *VehicleListResponse {
	result := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, *FromDomainVehicle(v))
	}
	return &VehicleListResponse{Vehicles: result}
}
