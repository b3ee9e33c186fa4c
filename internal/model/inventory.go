package model

import "encoding/json"

// CPUInfo describes the (single) processor package.
type CPUInfo struct {
	Name          string `json:"name"`
	Manufacturer  string `json:"manufacturer"`
	Description   string `json:"description"`
	CoreCount     int    `json:"core_count"`
	ClockSpeedMHz int    `json:"clock_speed_mhz"`
}

// GPUInfo is one video controller.
type GPUInfo struct {
	Name                 string `json:"name"`
	DriverVersion        string `json:"driver_version"`
	VideoProcessor       string `json:"video_processor"`
	VideoModeDescription string `json:"video_mode_description"`
	VRAMMB               uint64 `json:"vram_mb"`
}

// MemoryModule is one physical RAM stick.
type MemoryModule struct {
	CapacityMB   uint64 `json:"capacity_mb"`
	SpeedMHz     int    `json:"speed_mhz"`
	Manufacturer string `json:"manufacturer"`
	PartNumber   string `json:"part_number"`
}

// DiskDrive is one physical drive, distinct from the throughput list in
// UsageSnapshot.
type DiskDrive struct {
	Model         string `json:"model"`
	InterfaceType string `json:"interface_type"`
	MediaType     string `json:"media_type"`
	SizeGB        uint64 `json:"size_gb"`
	SerialNumber  string `json:"serial_number"`
}

// NetworkAdapter is the first physical, enabled adapter.
type NetworkAdapter struct {
	Name         string  `json:"name"`
	MACAddress   string  `json:"mac_address"`
	Manufacturer string  `json:"manufacturer"`
	AdapterType  string  `json:"adapter_type"`
	SpeedMbps    float64 `json:"speed_mbps"`
}

// BatteryInfo is battery identity and health.
type BatteryInfo struct {
	Name                            string        `json:"name"`
	EstimatedChargeRemainingPercent int           `json:"estimated_charge_remaining_percent"`
	Status                          BatteryStatus `json:"status"`
	DesignCapacityMWh               uint64        `json:"design_capacity_mwh"`
	FullChargeCapacityMWh           uint64        `json:"full_charge_capacity_mwh"`
}

// InventorySnapshot is the result of one inventory call.
type InventorySnapshot struct {
	CPU           Group[CPUInfo]        `json:"cpu"`
	GPUs          Group[[]GPUInfo]      `json:"gpus"`
	MemoryModules Group[[]MemoryModule] `json:"memory_modules"`
	Disks         Group[[]DiskDrive]    `json:"disks"`
	Network       Group[NetworkAdapter] `json:"network"`
	Battery       Group[BatteryInfo]    `json:"battery"`
}

// Groups maps each group name to its absence reason (nil when present).
func (s InventorySnapshot) Groups() map[string]error {
	return map[string]error{
		"cpu":            s.CPU.Reason(),
		"gpus":           s.GPUs.Reason(),
		"memory_modules": s.MemoryModules.Reason(),
		"disks":          s.Disks.Reason(),
		"network":        s.Network.Reason(),
		"battery":        s.Battery.Reason(),
	}
}

// BatteryStatus is the management interface's battery status code.
type BatteryStatus int

const (
	BatteryUnknown               BatteryStatus = 0
	BatteryDischarging           BatteryStatus = 1
	BatteryPluggedInFullyCharged BatteryStatus = 2
	BatteryFullyCharged          BatteryStatus = 3
	BatteryLow                   BatteryStatus = 4
	BatteryCritical              BatteryStatus = 5
	BatteryCharging              BatteryStatus = 6
	BatteryChargingHigh          BatteryStatus = 7
	BatteryChargingLow           BatteryStatus = 8
	BatteryChargingCritical      BatteryStatus = 9
	BatteryUndefined             BatteryStatus = 10
	BatteryPartiallyCharged      BatteryStatus = 11
)

var batteryStatusNames = map[BatteryStatus]string{
	BatteryDischarging:           "Discharging",
	BatteryPluggedInFullyCharged: "Plugged In, Fully Charged",
	BatteryFullyCharged:          "Fully Charged",
	BatteryLow:                   "Low Battery",
	BatteryCritical:              "Critical Battery",
	BatteryCharging:              "Charging",
	BatteryChargingHigh:          "Charging (High)",
	BatteryChargingLow:           "Charging (Low)",
	BatteryChargingCritical:      "Charging (Critical)",
	BatteryUndefined:             "Unknown",
	BatteryPartiallyCharged:      "Partially Charged",
}

// BatteryStatusFromCode maps a raw status code; anything outside 1..11 is
// BatteryUnknown.
func BatteryStatusFromCode(code int) BatteryStatus {
	s := BatteryStatus(code)
	if _, ok := batteryStatusNames[s]; !ok {
		return BatteryUnknown
	}
	return s
}

func (s BatteryStatus) String() string {
	if name, ok := batteryStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// OnAC reports whether the status implies external power.
func (s BatteryStatus) OnAC() bool {
	switch s {
	case BatteryPluggedInFullyCharged, BatteryFullyCharged, BatteryCharging, BatteryChargingHigh,
		BatteryChargingLow, BatteryChargingCritical, BatteryPartiallyCharged:
		return true
	}
	return false
}

func (s BatteryStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
