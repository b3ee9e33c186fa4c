package sampler

import (
	"math"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// Disk and memory MB are binary megabytes; network rates are decimal
// megabits.
const (
	bytesPerMB     = 1024 * 1024
	bitsPerMegabit = 1_000_000
)

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// BytesToMB converts to MB with one decimal.
func BytesToMB(b uint64) float64 { return Round(float64(b)/bytesPerMB, 1) }

// delta treats a counter that went backwards (reset or wrap) as no traffic.
func delta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

// DiskRates derives per-device MB/s from two counter reads taken elapsed
// apart. Devices missing from either read are skipped. The result is sorted
// by device name.
func DiskRates(t0, t1 map[string]disk.IOCountersStat, elapsed time.Duration) []model.DiskIO {
	out := make([]model.DiskIO, 0, len(t1))
	secs := elapsed.Seconds()
	for name, cur := range t1 {
		prev, ok := t0[name]
		if !ok {
			continue
		}
		d := model.DiskIO{Device: name}
		if secs > 0 {
			d.ReadMBps = Round(float64(delta(prev.ReadBytes, cur.ReadBytes))/bytesPerMB/secs, 2)
			d.WriteMBps = Round(float64(delta(prev.WriteBytes, cur.WriteBytes))/bytesPerMB/secs, 2)
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Device < out[j].Device })
	return out
}

// NetworkRate derives system-wide Mb/s from two aggregate counter reads.
func NetworkRate(t0, t1 net.IOCountersStat, elapsed time.Duration) model.Network {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return model.Network{}
	}
	return model.Network{
		UpMbps:   Round(float64(delta(t0.BytesSent, t1.BytesSent))*8/bitsPerMegabit/secs, 2),
		DownMbps: Round(float64(delta(t0.BytesRecv, t1.BytesRecv))*8/bitsPerMegabit/secs, 2),
	}
}

// CorePercents computes busy percent per core from two cpu.Times reads.
// Cores are paired by position; each value is clamped to [0,100].
func CorePercents(t0, t1 []cpu.TimesStat) []float64 {
	n := len(t1)
	if len(t0) < n {
		n = len(t0)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		prev, cur := t0[i], t1[i]
		dt := cur.Total() - prev.Total()
		if dt <= 0 {
			continue
		}
		di := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
		out[i] = clampPercent(100 * (dt - di) / dt)
	}
	return out
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// MinutesLeft floors seconds to whole minutes, or returns the unlimited
// sentinel.
func MinutesLeft(secs int64, unlimited bool) int64 {
	if unlimited {
		return model.UnlimitedMinutes
	}
	m := secs / 60
	if secs%60 != 0 && secs < 0 {
		m--
	}
	return m
}

// MemoryFrom converts a virtual memory read. Percent is taken as reported.
func MemoryFrom(vm *mem.VirtualMemoryStat) model.Memory {
	return model.Memory{
		TotalMB: BytesToMB(vm.Total),
		UsedMB:  BytesToMB(vm.Used),
		FreeMB:  BytesToMB(vm.Available),
		Percent: vm.UsedPercent,
	}
}

// BatteryFrom converts a raw battery read.
func BatteryFrom(r BatteryReading) model.Battery {
	return model.Battery{
		Percent:         r.Percent,
		PluggedIn:       r.PluggedIn,
		TimeLeftMinutes: MinutesLeft(r.SecondsLeft, r.Unlimited),
	}
}
