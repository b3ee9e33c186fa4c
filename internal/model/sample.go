package model

import "time"

// UnlimitedMinutes stands in for a time-left figure when the OS reports no
// limit (on AC power) or is still calculating.
const UnlimitedMinutes = 2147483640

// CPU holds instantaneous per-core busy percent in enumeration order.
type CPU struct {
	PerCore []float64 `json:"per_core"` // percent 0-100
}

// Memory is in MB (1,048,576 bytes). FreeMB is memory available for
// allocation, so UsedMB+FreeMB need not equal TotalMB.
type Memory struct {
	TotalMB float64 `json:"total_mb"`
	UsedMB  float64 `json:"used_mb"`
	FreeMB  float64 `json:"free_mb"`
	Percent float64 `json:"percent"`
}

// DiskIO captures per-physical-device throughput in MB/s.
type DiskIO struct {
	Device    string  `json:"device"`
	ReadMBps  float64 `json:"read_mbps"`
	WriteMBps float64 `json:"write_mbps"`
}

// Network is the system-wide aggregate in megabits per second.
type Network struct {
	UpMbps   float64 `json:"up_mbps"`
	DownMbps float64 `json:"down_mbps"`
}

// Battery shows charge state. TimeLeftMinutes is UnlimitedMinutes when the
// OS reports no limit.
type Battery struct {
	Percent         float64 `json:"percent"`
	PluggedIn       bool    `json:"plugged_in"`
	TimeLeftMinutes int64   `json:"time_left_minutes"`
}

// Unlimited reports whether TimeLeftMinutes is the sentinel.
func (b Battery) Unlimited() bool { return b.TimeLeftMinutes == UnlimitedMinutes }

// UsageSnapshot is the result of one sampling call. Each group may be absent
// independently of the others.
type UsageSnapshot struct {
	Timestamp time.Time       `json:"timestamp"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
	CPU       Group[CPU]      `json:"cpu"`
	Memory    Group[Memory]   `json:"memory"`
	Disks     Group[[]DiskIO] `json:"disks"`
	Network   Group[Network]  `json:"network"`
	Battery   Group[Battery]  `json:"battery"`
}

// Zero returns a snapshot with every group absent.
func Zero() UsageSnapshot {
	return UsageSnapshot{
		Timestamp: time.Now(),
		CPU:       Absent[CPU](nil),
		Memory:    Absent[Memory](nil),
		Disks:     Absent[[]DiskIO](nil),
		Network:   Absent[Network](nil),
		Battery:   Absent[Battery](nil),
	}
}

// AverageCPU is the mean of all core percentages, 0 when there are none.
func AverageCPU(perCore []float64) float64 {
	if len(perCore) == 0 {
		return 0
	}
	var sum float64
	for _, p := range perCore {
		sum += p
	}
	return sum / float64(len(perCore))
}

// TotalDiskIO sums throughput over all devices.
func TotalDiskIO(disks []DiskIO) (read, write float64) {
	for _, d := range disks {
		read += d.ReadMBps
		write += d.WriteMBps
	}
	return read, write
}
