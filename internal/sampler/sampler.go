package sampler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/winstatz/internal/config"
	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// Sampler produces UsageSnapshots from paired counter reads. Sample blocks
// for roughly Settle+Window and calls never overlap.
type Sampler struct {
	Interval   time.Duration
	Settle     time.Duration
	Window     time.Duration
	EnableBatt bool

	source Source
	logger *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func New(cfg config.Config, logger *zap.Logger) *Sampler {
	return NewWithSource(HostSource{}, cfg, logger)
}

// NewWithSource samples from src instead of the local host.
func NewWithSource(src Source, cfg config.Config, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{
		Interval:   cfg.Interval,
		Settle:     cfg.Settle,
		Window:     cfg.Window,
		EnableBatt: cfg.EnableBatt,
		source:     src,
		logger:     logger,
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

// Stream returns a channel that will receive snapshots until ctx is done.
// A single worker samples back to back; ticks that arrive while a sample is
// in flight are dropped.
func (s *Sampler) Stream(ctx context.Context) <-chan model.UsageSnapshot {
	ch := make(chan model.UsageSnapshot)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			snap := s.Sample(ctx)
			select {
			case ch <- snap:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Sample takes one snapshot. A group that cannot be read is absent; the
// others are still filled in.
func (s *Sampler) Sample(ctx context.Context) model.UsageSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	snap := model.UsageSnapshot{Timestamp: start}

	snap.CPU = guard(s, "cpu", func() (model.CPU, error) { return s.sampleCPU(ctx) })
	snap.Memory = guard(s, "memory", func() (model.Memory, error) { return s.sampleMemory(ctx) })
	snap.Disks, snap.Network = s.sampleIO(ctx)
	snap.Battery = guard(s, "battery", func() (model.Battery, error) { return s.sampleBattery(ctx) })

	snap.Elapsed = s.now().Sub(start)
	s.logger.Debug("Sample completed",
		zap.Duration("elapsed", snap.Elapsed),
		zap.Bool("cpu", snap.CPU.OK()),
		zap.Bool("memory", snap.Memory.OK()),
		zap.Bool("disks", snap.Disks.OK()),
		zap.Bool("network", snap.Network.OK()),
		zap.Bool("battery", snap.Battery.OK()))
	return snap
}

// guard runs one group read, turning errors and panics into an absent group.
func guard[T any](s *Sampler, group string, read func() (T, error)) (g model.Group[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s: panic: %v", group, r)
			s.logger.Warn("Group read panicked", zap.String("group", group), zap.Error(err))
			g = model.Absent[T](err)
		}
	}()
	v, err := read()
	if err != nil {
		return absentGroup[T](s, group, err)
	}
	return model.Present(v)
}

// sampleCPU discards the first read; it only sets the baseline.
func (s *Sampler) sampleCPU(ctx context.Context) (model.CPU, error) {
	t0, err := s.source.CPUTimes(ctx)
	if err != nil {
		return model.CPU{}, err
	}
	if err := s.sleep(ctx, s.Settle); err != nil {
		return model.CPU{}, err
	}
	t1, err := s.source.CPUTimes(ctx)
	if err != nil {
		return model.CPU{}, err
	}
	return model.CPU{PerCore: CorePercents(t0, t1)}, nil
}

func (s *Sampler) sampleMemory(ctx context.Context) (model.Memory, error) {
	vm, err := s.source.VirtualMemory(ctx)
	if err != nil {
		return model.Memory{}, err
	}
	return MemoryFrom(vm), nil
}

func (s *Sampler) sampleBattery(ctx context.Context) (model.Battery, error) {
	if !s.EnableBatt {
		return model.Battery{}, ErrBatteryDisabled
	}
	r, err := s.source.Battery(ctx)
	if err != nil {
		return model.Battery{}, err
	}
	return BatteryFrom(r), nil
}

// ioReading is one point-in-time read of both IO counter sets.
type ioReading struct {
	at      time.Time
	disks   map[string]disk.IOCountersStat
	diskErr error
	net     net.IOCountersStat
	netErr  error
}

// readIO reads disk and network counters concurrently so both sit close to
// the same instant.
func (s *Sampler) readIO(ctx context.Context) ioReading {
	var (
		r ioReading
		g errgroup.Group
	)
	g.Go(func() error {
		defer recoverInto(&r.diskErr, "disks")
		r.disks, r.diskErr = s.source.DiskCounters(ctx)
		return nil
	})
	g.Go(func() error {
		defer recoverInto(&r.netErr, "network")
		r.net, r.netErr = s.source.NetCounters(ctx)
		return nil
	})
	_ = g.Wait()
	r.at = s.now()
	return r
}

// sampleIO shares one Window between the disk and network deltas.
func (s *Sampler) sampleIO(ctx context.Context) (model.Group[[]model.DiskIO], model.Group[model.Network]) {
	var (
		disks model.Group[[]model.DiskIO]
		netw  model.Group[model.Network]
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("io: panic: %v", r)
				s.logger.Warn("Group read panicked", zap.String("group", "io"), zap.Error(err))
				disks = model.Absent[[]model.DiskIO](err)
				netw = model.Absent[model.Network](err)
			}
		}()

		r0 := s.readIO(ctx)
		if r0.diskErr != nil && r0.netErr != nil {
			disks = absentGroup[[]model.DiskIO](s, "disks", r0.diskErr)
			netw = absentGroup[model.Network](s, "network", r0.netErr)
			return
		}
		if err := s.sleep(ctx, s.Window); err != nil {
			disks = absentGroup[[]model.DiskIO](s, "disks", err)
			netw = absentGroup[model.Network](s, "network", err)
			return
		}
		r1 := s.readIO(ctx)
		elapsed := r1.at.Sub(r0.at)

		switch {
		case r0.diskErr != nil:
			disks = absentGroup[[]model.DiskIO](s, "disks", r0.diskErr)
		case r1.diskErr != nil:
			disks = absentGroup[[]model.DiskIO](s, "disks", r1.diskErr)
		default:
			disks = model.Present(DiskRates(r0.disks, r1.disks, elapsed))
		}

		switch {
		case r0.netErr != nil:
			netw = absentGroup[model.Network](s, "network", r0.netErr)
		case r1.netErr != nil:
			netw = absentGroup[model.Network](s, "network", r1.netErr)
		default:
			netw = model.Present(NetworkRate(r0.net, r1.net, elapsed))
		}
	}()
	return disks, netw
}

func absentGroup[T any](s *Sampler, group string, err error) model.Group[T] {
	s.logger.Debug("Group unavailable", zap.String("group", group), zap.Error(err))
	return model.Absent[T](err)
}

// recoverInto must be deferred directly.
func recoverInto(errp *error, group string) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("%s: panic: %v", group, r)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
