//go:build windows

package sampler

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// batteryClient leaves NULL columns as nil pointers; the default client
// would allocate a zero instead.
var batteryClient = &wmi.Client{PtrNil: true, AllowMissingFields: true}

func readBattery(_ context.Context) (BatteryReading, error) {
	var dst []win32BatteryUsage
	q := "SELECT EstimatedChargeRemaining, EstimatedRunTime, BatteryStatus FROM Win32_Battery"
	if err := batteryClient.Query(q, &dst); err != nil {
		return BatteryReading{}, fmt.Errorf("querying Win32_Battery: %w", err)
	}
	return batteryFromWMI(dst)
}
