package sampler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

var (
	// ErrNoBattery means no battery hardware was found.
	ErrNoBattery = errors.New("no battery detected")
	// ErrBatteryDisabled is reported when battery sampling is switched off.
	ErrBatteryDisabled = errors.New("battery sampling disabled")
	errNoCounters      = errors.New("no counters reported")
)

// BatteryReading is a raw battery read. Unlimited is set when the OS reports
// no time limit or has not finished estimating.
type BatteryReading struct {
	Percent     float64
	PluggedIn   bool
	SecondsLeft int64
	Unlimited   bool
}

// Source is the OS counter interface the sampler reads from.
type Source interface {
	CPUTimes(ctx context.Context) ([]cpu.TimesStat, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskCounters(ctx context.Context) (map[string]disk.IOCountersStat, error)
	NetCounters(ctx context.Context) (net.IOCountersStat, error)
	Battery(ctx context.Context) (BatteryReading, error)
}

// HostSource reads the local machine through gopsutil.
type HostSource struct{}

func (HostSource) CPUTimes(ctx context.Context) ([]cpu.TimesStat, error) {
	times, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU times: %w", err)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("cpu: %w", errNoCounters)
	}
	return times, nil
}

func (HostSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory statistics: %w", err)
	}
	return vm, nil
}

func (HostSource) DiskCounters(ctx context.Context) (map[string]disk.IOCountersStat, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk counters: %w", err)
	}
	for name := range counters {
		if strings.HasPrefix(name, "loop") {
			delete(counters, name)
		}
	}
	return counters, nil
}

func (HostSource) NetCounters(ctx context.Context) (net.IOCountersStat, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return net.IOCountersStat{}, fmt.Errorf("failed to get network counters: %w", err)
	}
	if len(counters) == 0 {
		return net.IOCountersStat{}, fmt.Errorf("network: %w", errNoCounters)
	}
	return counters[0], nil
}

func (HostSource) Battery(ctx context.Context) (BatteryReading, error) {
	return readBattery(ctx)
}
