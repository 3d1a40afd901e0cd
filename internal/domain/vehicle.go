package domain

import "fmt"

// VehicleType vehicle class; every class has its own capacity counter
type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "TWO_WHEELER"
	VehicleFourWheeler VehicleType = "FOUR_WHEELER"
	VehicleHeavy       VehicleType = "HEAVY"
)

// VehicleTypes all supported classes in display order
var VehicleTypes = []VehicleType{VehicleTwoWheeler, VehicleFourWheeler, VehicleHeavy}

// ParseVehicleType validates a raw vehicle type string
func ParseVehicleType(s string) (VehicleType, error) {
	for _, vt := range VehicleTypes {
		if string(vt) == s {
			return vt, nil
		}
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// Vehicle a user's vehicle (or a preset option)
type Vehicle struct {
	ID        string
	UserID    string
	Type      VehicleType
	Number    string
	Brand     string
	Model     string
	Color     string
	PhotoURL  *string
	IsDefault bool
	IsPreset  bool
}

// DefaultVehiclePresets options offered before the user adds their own vehicle
var DefaultVehiclePresets = []Vehicle{
	{ID: "preset_1", Type: VehicleTwoWheeler, Brand: "Honda", Model: "Activa", IsPreset: true},
	{ID: "preset_2", Type: VehicleTwoWheeler, Brand: "TVS", Model: "Jupiter", IsPreset: true},
	{ID: "preset_3", Type: VehicleTwoWheeler, Brand: "Royal Enfield", Model: "Classic 350", IsPreset: true},
	{ID: "preset_4", Type: VehicleFourWheeler, Brand: "Maruti Suzuki", Model: "Swift", IsPreset: true},
	{ID: "preset_5", Type: VehicleFourWheeler, Brand: "Hyundai", Model: "i20", IsPreset: true},
	{ID: "preset_6", Type: VehicleFourWheeler, Brand: "Tata", Model: "Nexon", IsPreset: true},
	{ID: "preset_7", Type: VehicleFourWheeler, Brand: "Honda", Model: "City", IsPreset: true},
	{ID: "preset_8", Type: VehicleFourWheeler, Brand: "Mahindra", Model: "XUV700", IsPreset: true},
}
