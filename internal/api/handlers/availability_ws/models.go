package availability_ws

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	messageTypeSpot = "availability"
	messageTypeAll  = "availability_all"
)

// Message сообщение в websocket
// Availability == nil / пустая карта: доступность неизвестна
type Message struct {
	Type         string            `json:"type"`
	SpotID       string            `json:"spotId,omitempty"`
	Availability *Record           `json:"availability,omitempty"`
	All          map[string]Record `json:"all,omitempty"`
	Unknown      bool              `json:"unknown,omitempty"`
}

// Record счетчики одной парковки
type Record struct {
	SpotID               string         `json:"spotId"`
	AvailableTwoWheeler  int            `json:"availableSpotsTwoWheeler"`
	AvailableFourWheeler int            `json:"availableSpotsFourWheeler"`
	AvailableHeavy       int            `json:"availableSpotsHeavy"`
	FloorAvailability    map[string]int `json:"floorAvailability"`
	LastUpdated          string         `json:"lastUpdated"`
}

func fromDomainRecord(a *domain.ParkingAvailability) *Record {
	if a == nil {
		return nil
	}
	return &Record{
		SpotID:               a.SpotID,
		AvailableTwoWheeler:  a.AvailableTwoWheeler,
		AvailableFourWheeler: a.AvailableFourWheeler,
		AvailableHeavy:       a.AvailableHeavy,
		FloorAvailability:    a.FloorAvailability,
		LastUpdated:          a.LastUpdated.Format(time.RFC3339),
	}
}

func spotMessage(spotID string, a *domain.ParkingAvailability) Message {
	return Message{
		Type:         messageTypeSpot,
		SpotID:       spotID,
		Availability: fromDomainRecord(a),
		Unknown:      a == nil,
	}
}

func allMessage(m map[string]domain.ParkingAvailability) Message {
	all := make(map[string]Record, len(m))
	for id, a := range m {
		a := a
		all[id] = *fromDomainRecord(&a)
	}
	return Message{
		Type:    messageTypeAll,
		All:     all,
		Unknown: len(m) == 0,
	}
}
