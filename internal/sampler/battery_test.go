package sampler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSysfs(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSysfsBatteryMissing(t *testing.T) {
	if _, err := readSysfsBattery(t.TempDir()); !errors.Is(err, ErrNoBattery) {
		t.Fatalf("err = %v, want ErrNoBattery", err)
	}
}

func TestSysfsBatteryDischargingEnergy(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, map[string]string{
		"BAT0/capacity":   "64",
		"BAT0/status":     "Discharging",
		"BAT0/energy_now": "50000000",
		"BAT0/power_now":  "10000000",
	})
	r, err := readSysfsBattery(root)
	if err != nil {
		t.Fatal(err)
	}
	if r.Percent != 64 || r.PluggedIn || r.Unlimited || r.SecondsLeft != 5*3600 {
		t.Fatalf("reading = %+v", r)
	}
}

func TestSysfsBatteryDischargingCharge(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, map[string]string{
		"BAT1/charge_now":  "3000000",
		"BAT1/charge_full": "6000000",
		"BAT1/current_now": "1500000",
		"BAT1/status":      "Discharging",
	})
	r, err := readSysfsBattery(root)
	if err != nil {
		t.Fatal(err)
	}
	if r.Percent != 50 || r.SecondsLeft != 2*3600 {
		t.Fatalf("reading = %+v", r)
	}
}

func TestSysfsBatteryPluggedInIsUnlimited(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, map[string]string{
		"BAT0/capacity":   "99",
		"BAT0/status":     "Not charging",
		"BAT0/energy_now": "50000000",
		"BAT0/power_now":  "0",
		"AC/online":       "1",
	})
	r, err := readSysfsBattery(root)
	if err != nil {
		t.Fatal(err)
	}
	if !r.PluggedIn || !r.Unlimited {
		t.Fatalf("reading = %+v", r)
	}
	if BatteryFrom(r).TimeLeftMinutes != 2147483640 {
		t.Fatal("plugged in battery should report the unlimited sentinel")
	}
}

func TestSysfsBatteryCalculating(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, map[string]string{
		"BAT0/capacity":  "40",
		"BAT0/status":    "Discharging",
		"BAT0/power_now": "0",
		"AC/online":      "0",
	})
	r, err := readSysfsBattery(root)
	if err != nil {
		t.Fatal(err)
	}
	if r.PluggedIn || !r.Unlimited {
		t.Fatalf("reading = %+v", r)
	}
}

func TestSysfsBatteryNoCapacity(t *testing.T) {
	root := t.TempDir()
	writeSysfs(t, root, map[string]string{"BAT0/status": "Full"})
	if _, err := readSysfsBattery(root); err == nil {
		t.Fatal("expected error without any capacity source")
	}
}
