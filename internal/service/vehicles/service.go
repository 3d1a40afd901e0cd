package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

// Service сервис для работы с автомобилями пользователя
type Service struct {
	vehicleRepo  VehicleRepository
	catalog      CatalogClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(
	vehicleRepo VehicleRepository,
	catalog CatalogClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		vehicleRepo:  vehicleRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List получает автомобили пользователя, автомобиль по умолчанию первым
func (s *Service) List(ctx context.Context, userID string) (*models.VehicleListResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	vehicles, err := s.vehicleRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List: failed to list vehicles for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicleList(vehicles), nil
}

// Add добавляет автомобиль; первый автомобиль пользователя становится автомобилем по умолчанию
func (s *Service) Add(ctx context.Context, req *models.AddVehicleRequest) (*models.VehicleResponse, error) {
	vehicle, err := validateAddRequest(req)
	if err != nil {
		s.logger.Warn("Add: validation failed for user=%s: %v", req.UserID, err)
		return nil, err
	}
	vehicle.ID = uuid.NewString()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.vehicleRepo.ListByUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		vehicle.IsDefault = len(existing) == 0

		return s.vehicleRepo.Create(ctx, vehicle, s.timeProvider.Now())
	})
	if err != nil {
		s.logger.Error("Add: failed to add vehicle for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: vehicle id=%s added for user=%s (default=%t)", vehicle.ID, req.UserID, vehicle.IsDefault)
	return models.FromDomainVehicle(vehicle), nil
}

// Delete удаляет автомобиль; если он был по умолчанию, флаг переходит к следующему
func (s *Service) Delete(ctx context.Context, userID, vehicleID string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.vehicleRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		var (
			found      bool
			wasDefault bool
			next       string
		)
		for _, v := range existing {
			if v.ID == vehicleID {
				found = true
				wasDefault = v.IsDefault
				continue
			}
			if next == "" {
				next = v.ID
			}
		}
		if !found {
			return vehicleRepo.ErrVehicleNotFound
		}

		if err := s.vehicleRepo.Delete(ctx, userID, vehicleID); err != nil {
			return err
		}

		if wasDefault && next != "" {
			return s.vehicleRepo.SetDefault(ctx, userID, next)
		}
		return nil
	})
	if err != nil {
		return s.mapError("Delete", userID, vehicleID, err)
	}

	s.logger.Info("Delete: vehicle id=%s removed for user=%s", vehicleID, userID)
	return nil
}

// SetDefault делает автомобиль автомобилем по умолчанию
func (s *Service) SetDefault(ctx context.Context, userID, vehicleID string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.vehicleRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, v := range existing {
			if v.ID == vehicleID {
				return s.vehicleRepo.SetDefault(ctx, userID, vehicleID)
			}
		}
		return vehicleRepo.ErrVehicleNotFound
	})
	if err != nil {
		return s.mapError("SetDefault", userID, vehicleID, err)
	}

	return nil
}

// Presets возвращает варианты автомобилей из справочника; при недоступности справочника - встроенный список
func (s *Service) Presets(ctx context.Context) *models.VehicleListResponse {
	data, err := s.catalog.GetVehiclesData(ctx)
	if err != nil {
		s.logger.Warn("Presets: catalog unavailable, using built-in presets: %v", err)
		return defaultPresets()
	}

	presets := make([]*domain.Vehicle, 0, len(data.PresetVehicles))
	for _, p := range data.PresetVehicles {
		if v, ok := p.ToDomain(); ok {
			presets = append(presets, &v)
		}
	}
	if len(presets) == 0 {
		return defaultPresets()
	}

	return models.FromDomainVehicleList(presets)
}

func (s *Service) mapError(op, userID, vehicleID string, err error) error {
	if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
		s.logger.Warn("%s: vehicle id=%s not found for user=%s", op, vehicleID, userID)
		return ErrVehicleNotFound
	}
	s.logger.Error("%s: failed for vehicle id=%s, user=%s: %v", op, vehicleID, userID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func defaultPresets() *models.VehicleListResponse {
	presets := make([]*domain.Vehicle, 0, len(domain.DefaultVehiclePresets))
	for i := range domain.DefaultVehiclePresets {
		v := domain.DefaultVehiclePresets[i]
		presets = append(presets, &v)
	}
	return models.FromDomainVehicleList(presets)
}

// validateAddRequest валидирует запрос и собирает доменную модель
func validateAddRequest(req *models.AddVehicleRequest) (*domain.Vehicle, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	vt, err := domain.ParseVehicleType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	number := strings.ToUpper(strings.TrimSpace(req.Number))
	if number == "" {
		return nil, fmt.Errorf("%w: vehicle number is required", ErrInvalidInput)
	}

	return &domain.Vehicle{
		UserID:   req.UserID,
		Type:     vt,
		Number:   number,
		Brand:    strings.TrimSpace(req.Brand),
		Model:    strings.TrimSpace(req.Model),
		Color:    strings.TrimSpace(req.Color),
		PhotoURL: req.PhotoURL,
	}, nil
}
