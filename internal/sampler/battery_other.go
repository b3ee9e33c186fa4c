//go:build !linux && !windows

package sampler

import "context"

func readBattery(_ context.Context) (BatteryReading, error) {
	return BatteryReading{}, ErrNoBattery
}
