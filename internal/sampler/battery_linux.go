//go:build linux

package sampler

import "context"

const powerSupplyDir = "/sys/class/power_supply"

func readBattery(_ context.Context) (BatteryReading, error) {
	return readSysfsBattery(powerSupplyDir)
}
