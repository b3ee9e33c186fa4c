package sampler

import (
	"errors"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

// Win32_Battery reports this run time while on AC power.
const runTimeOnAC = 71582788

// win32BatteryUsage is a Win32_Battery row. Pointer fields are nil when the
// column is NULL, which Windows does while it is still estimating.
type win32BatteryUsage struct {
	EstimatedChargeRemaining *uint16
	EstimatedRunTime         *uint32
	BatteryStatus            uint16
}

var errNoCharge = errors.New("battery charge not reported")

func batteryFromWMI(rows []win32BatteryUsage) (BatteryReading, error) {
	if len(rows) == 0 {
		return BatteryReading{}, ErrNoBattery
	}
	b := rows[0]
	if b.EstimatedChargeRemaining == nil {
		return BatteryReading{}, errNoCharge
	}

	r := BatteryReading{
		Percent:   float64(*b.EstimatedChargeRemaining),
		PluggedIn: model.BatteryStatusFromCode(int(b.BatteryStatus)).OnAC(),
	}
	switch {
	case r.PluggedIn, b.EstimatedRunTime == nil, *b.EstimatedRunTime == runTimeOnAC:
		r.Unlimited = true
	default:
		r.SecondsLeft = int64(*b.EstimatedRunTime) * 60
	}
	return r, nil
}
