package inventory

import (
	"strings"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// WMI rows. Type names double as class names when building queries, the
// same way gopsutil does; WMI class names are case-insensitive.
type (
	win32_Processor struct {
		Name          string
		Manufacturer  string
		Description   string
		NumberOfCores uint32
		MaxClockSpeed uint32
	}

	win32_VideoController struct {
		Name                 string
		DriverVersion        string
		Description          string
		VideoModeDescription string
		AdapterRAM           uint32
	}

	win32_PhysicalMemory struct {
		Capacity     uint64
		Speed        uint32
		Manufacturer string
		PartNumber   string
	}

	win32_DiskDrive struct {
		Model         string
		InterfaceType string
		MediaType     string
		Size          uint64
		SerialNumber  string
	}

	win32_NetworkAdapter struct {
		Name            string
		MACAddress      string
		Manufacturer    string
		AdapterType     string
		Speed           uint64
		PhysicalAdapter bool
		NetEnabled      bool
	}

	win32_Battery struct {
		Name                     string
		EstimatedChargeRemaining uint16
		BatteryStatus            uint16
		DesignCapacity           uint32
		FullChargeCapacity       uint32
	}
)

const (
	bytesPerMB = 1 << 20
	bytesPerGB = 1 << 30
	bitsPerMb  = 1_000_000
)

// mapCPU takes the first processor package.
func mapCPU(rows []win32_Processor) (model.CPUInfo, error) {
	if len(rows) == 0 {
		return model.CPUInfo{}, ErrNotFound
	}
	p := rows[0]
	return model.CPUInfo{
		Name:          strings.TrimSpace(p.Name),
		Manufacturer:  p.Manufacturer,
		Description:   p.Description,
		CoreCount:     int(p.NumberOfCores),
		ClockSpeedMHz: int(p.MaxClockSpeed),
	}, nil
}

func mapGPUs(rows []win32_VideoController) ([]model.GPUInfo, error) {
	out := make([]model.GPUInfo, 0, len(rows))
	for _, g := range rows {
		out = append(out, model.GPUInfo{
			Name:                 g.Name,
			DriverVersion:        g.DriverVersion,
			VideoProcessor:       g.Description,
			VideoModeDescription: g.VideoModeDescription,
			VRAMMB:               uint64(g.AdapterRAM) / bytesPerMB,
		})
	}
	return out, nil
}

func mapMemoryModules(rows []win32_PhysicalMemory) ([]model.MemoryModule, error) {
	out := make([]model.MemoryModule, 0, len(rows))
	for _, m := range rows {
		out = append(out, model.MemoryModule{
			CapacityMB:   m.Capacity / bytesPerMB,
			SpeedMHz:     int(m.Speed),
			Manufacturer: strings.TrimSpace(m.Manufacturer),
			PartNumber:   strings.TrimSpace(m.PartNumber),
		})
	}
	return out, nil
}

func mapDisks(rows []win32_DiskDrive) ([]model.DiskDrive, error) {
	out := make([]model.DiskDrive, 0, len(rows))
	for _, d := range rows {
		media := d.MediaType
		if media == "" {
			media = "Unknown"
		}
		serial := strings.TrimSpace(d.SerialNumber)
		if serial == "" {
			serial = "N/A"
		}
		out = append(out, model.DiskDrive{
			Model:         d.Model,
			InterfaceType: d.InterfaceType,
			MediaType:     media,
			SizeGB:        d.Size / bytesPerGB,
			SerialNumber:  serial,
		})
	}
	return out, nil
}

// mapNetwork picks the first adapter that is both physical and enabled.
// TODO: report every matching adapter once the specs view can page them.
func mapNetwork(rows []win32_NetworkAdapter) (model.NetworkAdapter, error) {
	for _, n := range rows {
		if !n.PhysicalAdapter || !n.NetEnabled {
			continue
		}
		return model.NetworkAdapter{
			Name:         n.Name,
			MACAddress:   n.MACAddress,
			Manufacturer: n.Manufacturer,
			AdapterType:  n.AdapterType,
			SpeedMbps:    float64(n.Speed) / bitsPerMb,
		}, nil
	}
	return model.NetworkAdapter{}, ErrNotFound
}

func mapBattery(rows []win32_Battery) (model.BatteryInfo, error) {
	if len(rows) == 0 {
		return model.BatteryInfo{}, ErrNotFound
	}
	b := rows[0]
	return model.BatteryInfo{
		Name:                            b.Name,
		EstimatedChargeRemainingPercent: int(b.EstimatedChargeRemaining),
		Status:                          model.BatteryStatusFromCode(int(b.BatteryStatus)),
		DesignCapacityMWh:               uint64(b.DesignCapacity),
		FullChargeCapacityMWh:           uint64(b.FullChargeCapacity),
	}, nil
}
