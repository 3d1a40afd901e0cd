package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	parkingSpotsPath = "/parking-spots.json"
	vehiclesPath     = "/vehicles.json"
)

// Client клиент статического каталога парковок
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetParkingSpots загружает каталог парковок
func (c *Client) GetParkingSpots(ctx context.Context) ([]domain.ParkingSpot, error) {
	var resp ParkingSpotsResponse
	if err := c.get(ctx, parkingSpotsPath, &resp); err != nil {
		return nil, err
	}

	spots := make([]domain.ParkingSpot, 0, len(resp.ParkingSpots))
	for _, s := range resp.ParkingSpots {
		if s.ID == "" {
			c.log.Warn("Catalog: skipping parking spot without id (name=%q)", s.Name)
			continue
		}
		spots = append(spots, s.ToDomain())
	}

	c.log.Info("Catalog: loaded %d parking spots", len(spots))
	return spots, nil
}

// GetVehiclesData загружает справочник типов, брендов и пресетов автомобилей
func (c *Client) GetVehiclesData(ctx context.Context) (*VehiclesResponse, error) {
	var resp VehiclesResponse
	if err := c.get(ctx, vehiclesPath, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
