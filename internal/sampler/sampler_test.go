package sampler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/winstatz/internal/config"
	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// fakeSource replays successive counter reads; the last one repeats.
type fakeSource struct {
	mu sync.Mutex

	cpu      [][]cpu.TimesStat
	cpuCalls int
	cpuErr   error

	vm    *mem.VirtualMemoryStat
	vmErr error

	disks     []map[string]disk.IOCountersStat
	diskCalls int
	diskErr   error
	diskPanic bool

	nets     []net.IOCountersStat
	netCalls int
	netErr   error

	batt    BatteryReading
	battErr error
}

func pick[T any](reads []T, calls *int) T {
	i := *calls
	*calls++
	if i >= len(reads) {
		i = len(reads) - 1
	}
	return reads[i]
}

func (f *fakeSource) CPUTimes(context.Context) ([]cpu.TimesStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cpuErr != nil {
		return nil, f.cpuErr
	}
	return pick(f.cpu, &f.cpuCalls), nil
}

func (f *fakeSource) VirtualMemory(context.Context) (*mem.VirtualMemoryStat, error) {
	return f.vm, f.vmErr
}

func (f *fakeSource) DiskCounters(context.Context) (map[string]disk.IOCountersStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.diskPanic {
		panic("driver exploded")
	}
	if f.diskErr != nil {
		return nil, f.diskErr
	}
	return pick(f.disks, &f.diskCalls), nil
}

func (f *fakeSource) NetCounters(context.Context) (net.IOCountersStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.netErr != nil {
		return net.IOCountersStat{}, f.netErr
	}
	return pick(f.nets, &f.netCalls), nil
}

func (f *fakeSource) Battery(context.Context) (BatteryReading, error) {
	return f.batt, f.battErr
}

func healthySource() *fakeSource {
	return &fakeSource{
		cpu: [][]cpu.TimesStat{
			{{User: 10, Idle: 90}, {User: 0, Idle: 100}},
			{{User: 60, Idle: 140}, {User: 100, Idle: 100}},
		},
		vm: &mem.VirtualMemoryStat{Total: 4096 * mb, Used: 1024 * mb, Available: 2048 * mb, UsedPercent: 25},
		disks: []map[string]disk.IOCountersStat{
			{"sda": {ReadBytes: 100 * mb, WriteBytes: 50 * mb}},
			{"sda": {ReadBytes: 160 * mb, WriteBytes: 50 * mb}},
		},
		nets: []net.IOCountersStat{
			{BytesSent: 0, BytesRecv: 0},
			{BytesSent: 125_000, BytesRecv: 1_250_000},
		},
		batt: BatteryReading{Percent: 77, SecondsLeft: 7200},
	}
}

// fakeClock advances only when the sampler sleeps.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
	return nil
}

func newTestSampler(src Source) *Sampler {
	s := NewWithSource(src, config.Default(), zap.NewNop())
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.now = clk.now
	s.sleep = clk.sleep
	return s
}

func TestSampleAllGroups(t *testing.T) {
	s := newTestSampler(healthySource())
	snap := s.Sample(context.Background())

	c, ok := snap.CPU.Get()
	if !ok || len(c.PerCore) != 2 || c.PerCore[0] != 50 || c.PerCore[1] != 100 {
		t.Fatalf("cpu = %+v ok=%v", c, ok)
	}
	m, ok := snap.Memory.Get()
	if !ok || m.TotalMB != 4096 || m.UsedMB != 1024 || m.FreeMB != 2048 || m.Percent != 25 {
		t.Fatalf("memory = %+v ok=%v", m, ok)
	}
	d, ok := snap.Disks.Get()
	if !ok || len(d) != 1 || d[0].ReadMBps != 60 || d[0].WriteMBps != 0 {
		t.Fatalf("disks = %+v ok=%v", d, ok)
	}
	n, ok := snap.Network.Get()
	if !ok || n.UpMbps != 1 || n.DownMbps != 10 {
		t.Fatalf("network = %+v ok=%v", n, ok)
	}
	b, ok := snap.Battery.Get()
	if !ok || b.TimeLeftMinutes != 120 || b.Percent != 77 {
		t.Fatalf("battery = %+v ok=%v", b, ok)
	}
	if want := s.Settle + s.Window; snap.Elapsed != want {
		t.Fatalf("elapsed = %v, want %v", snap.Elapsed, want)
	}
}

func TestSampleContainsGroupFailures(t *testing.T) {
	src := healthySource()
	src.cpuErr = errors.New("permission denied")
	src.diskPanic = true
	src.battErr = ErrNoBattery

	snap := newTestSampler(src).Sample(context.Background())

	if snap.CPU.OK() || snap.Disks.OK() || snap.Battery.OK() {
		t.Fatalf("failed groups should be absent: cpu=%v disks=%v battery=%v",
			snap.CPU.OK(), snap.Disks.OK(), snap.Battery.OK())
	}
	if !errors.Is(snap.Battery.Reason(), ErrNoBattery) {
		t.Fatalf("battery reason = %v", snap.Battery.Reason())
	}
	if !snap.Memory.OK() || !snap.Network.OK() {
		t.Fatal("healthy groups must still be present")
	}
}

func TestSampleAllGroupsFailing(t *testing.T) {
	boom := errors.New("unsupported platform")
	src := &fakeSource{cpuErr: boom, vmErr: boom, diskErr: boom, netErr: boom, battErr: boom}
	snap := newTestSampler(src).Sample(context.Background())
	if snap.CPU.OK() || snap.Memory.OK() || snap.Disks.OK() || snap.Network.OK() || snap.Battery.OK() {
		t.Fatal("every group should be absent")
	}
}

func TestSampleBatteryDisabled(t *testing.T) {
	s := newTestSampler(healthySource())
	s.EnableBatt = false
	snap := s.Sample(context.Background())
	if !errors.Is(snap.Battery.Reason(), ErrBatteryDisabled) {
		t.Fatalf("battery reason = %v", snap.Battery.Reason())
	}
}

func TestSampleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap := newTestSampler(healthySource()).Sample(ctx)
	if snap.CPU.OK() || snap.Disks.OK() || snap.Network.OK() {
		t.Fatal("delta groups need their wait to complete")
	}
	if !snap.Memory.OK() {
		t.Fatal("single-read groups do not wait")
	}
}

func TestSampleCallsDoNotOverlap(t *testing.T) {
	s := newTestSampler(healthySource())
	var active, peak int32
	s.sleep = func(context.Context, time.Duration) error {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Sample(context.Background())
		}()
	}
	wg.Wait()
	if peak != 1 {
		t.Fatalf("overlapping samples observed: peak=%d", peak)
	}
}

func TestStreamClosesOnCancel(t *testing.T) {
	s := newTestSampler(healthySource())
	s.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Stream(ctx)

	select {
	case snap := <-ch:
		if !snap.Memory.OK() {
			t.Fatal("expected a populated snapshot")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close")
		}
	}
}

func TestZeroSnapshotIsAllAbsent(t *testing.T) {
	z := model.Zero()
	if z.CPU.OK() || z.Memory.OK() || z.Disks.OK() || z.Network.OK() || z.Battery.OK() {
		t.Fatal("zero snapshot should be all absent")
	}
}
