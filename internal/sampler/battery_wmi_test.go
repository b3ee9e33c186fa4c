package sampler

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestBatteryFromWMI(t *testing.T) {
	tests := []struct {
		name string
		row  win32BatteryUsage
		want BatteryReading
	}{
		{
			name: "discharging with estimate",
			row:  win32BatteryUsage{EstimatedChargeRemaining: ptr[uint16](64), EstimatedRunTime: ptr[uint32](95), BatteryStatus: 1},
			want: BatteryReading{Percent: 64, SecondsLeft: 95 * 60},
		},
		{
			name: "still estimating",
			row:  win32BatteryUsage{EstimatedChargeRemaining: ptr[uint16](64), BatteryStatus: 1},
			want: BatteryReading{Percent: 64, Unlimited: true},
		},
		{
			name: "on AC run time",
			row:  win32BatteryUsage{EstimatedChargeRemaining: ptr[uint16](99), EstimatedRunTime: ptr[uint32](runTimeOnAC), BatteryStatus: 1},
			want: BatteryReading{Percent: 99, Unlimited: true},
		},
		{
			name: "charging",
			row:  win32BatteryUsage{EstimatedChargeRemaining: ptr[uint16](40), EstimatedRunTime: ptr[uint32](200), BatteryStatus: 6},
			want: BatteryReading{Percent: 40, PluggedIn: true, Unlimited: true},
		},
		{
			name: "fully charged",
			row:  win32BatteryUsage{EstimatedChargeRemaining: ptr[uint16](100), BatteryStatus: 3},
			want: BatteryReading{Percent: 100, PluggedIn: true, Unlimited: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := batteryFromWMI([]win32BatteryUsage{tt.row})
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if tt.want.Unlimited && BatteryFrom(got).TimeLeftMinutes != 2147483640 {
				t.Fatalf("unlimited reading should map to the sentinel, got %d", BatteryFrom(got).TimeLeftMinutes)
			}
		})
	}
}

func TestBatteryFromWMIMissing(t *testing.T) {
	if _, err := batteryFromWMI(nil); !errors.Is(err, ErrNoBattery) {
		t.Fatalf("no rows: err = %v", err)
	}
	if _, err := batteryFromWMI([]win32BatteryUsage{{BatteryStatus: 1}}); !errors.Is(err, errNoCharge) {
		t.Fatalf("NULL charge: err = %v", err)
	}
}
