package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

var (
	// ErrUnavailable means the platform has no management interface to query.
	ErrUnavailable = errors.New("management interface unavailable")
	// ErrNotFound means the query succeeded but matched no device.
	ErrNotFound = errors.New("no matching device")
)

// Querier runs a management-interface query, filling dst (a pointer to a
// slice of row structs whose type name is the class to query).
type Querier interface {
	Query(dst any) error
}

// Reader enumerates static hardware identity. It is safe for concurrent use
// but slow; call it on demand, not on the display cadence.
type Reader struct {
	q      Querier
	logger *zap.Logger
}

// New returns a Reader for the platform's management interface.
func New(logger *zap.Logger) *Reader {
	return NewWithQuerier(platformQuerier(), logger)
}

func NewWithQuerier(q Querier, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{q: q, logger: logger}
}

// Read queries all six groups independently. It never fails as a whole: on
// a platform without a management interface every group is absent.
func (r *Reader) Read(ctx context.Context) model.InventorySnapshot {
	snap := model.InventorySnapshot{
		CPU:           query(ctx, r, "cpu", mapCPU),
		GPUs:          query(ctx, r, "gpus", mapGPUs),
		MemoryModules: query(ctx, r, "memory_modules", mapMemoryModules),
		Disks:         query(ctx, r, "disks", mapDisks),
		Network:       query(ctx, r, "network", mapNetwork),
		Battery:       query(ctx, r, "battery", mapBattery),
	}

	unavailable := 0
	for group, err := range snap.Groups() {
		switch {
		case err == nil:
		case errors.Is(err, ErrUnavailable):
			unavailable++
		default:
			r.logger.Debug("Inventory group unavailable", zap.String("group", group), zap.Error(err))
		}
	}
	if unavailable == len(snap.Groups()) {
		r.logger.Warn("Hardware inventory unavailable on this platform")
	}
	return snap
}

func query[Row, T any](ctx context.Context, r *Reader, group string, mapRows func([]Row) (T, error)) (g model.Group[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%s: panic: %v", group, rec)
			r.logger.Warn("Inventory query panicked", zap.String("group", group), zap.Error(err))
			g = model.Absent[T](err)
		}
	}()
	if err := ctx.Err(); err != nil {
		return model.Absent[T](err)
	}

	var rows []Row
	if err := r.q.Query(&rows); err != nil {
		return model.Absent[T](fmt.Errorf("%s: %w", group, err))
	}
	v, err := mapRows(rows)
	if err != nil {
		return model.Absent[T](fmt.Errorf("%s: %w", group, err))
	}
	return model.Present(v)
}
