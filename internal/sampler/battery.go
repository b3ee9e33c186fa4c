package sampler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readSysfsBattery reads the first BAT* entry under a power_supply
// directory.
func readSysfsBattery(root string) (BatteryReading, error) {
	bats, _ := filepath.Glob(filepath.Join(root, "BAT*"))
	if len(bats) == 0 {
		return BatteryReading{}, ErrNoBattery
	}
	base := bats[0]
	read := func(name string) (string, bool) {
		b, err := os.ReadFile(filepath.Join(base, name))
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(string(b)), true
	}
	readInt := func(name string) (int64, bool) {
		v, ok := read(name)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}

	var r BatteryReading
	if v, ok := read("capacity"); ok {
		r.Percent = parseFloat(v)
	} else if now, ok := readInt("energy_now"); ok {
		full, _ := readInt("energy_full")
		r.Percent = ratioPercent(now, full)
	} else if now, ok := readInt("charge_now"); ok {
		full, _ := readInt("charge_full")
		r.Percent = ratioPercent(now, full)
	} else {
		return BatteryReading{}, fmt.Errorf("battery %s: no capacity reported", filepath.Base(base))
	}

	status, _ := read("status")
	status = strings.ToLower(status)
	r.PluggedIn = status != "discharging"
	if online, ok := acOnline(root); ok {
		r.PluggedIn = online
	}

	if r.PluggedIn {
		r.Unlimited = true
		return r, nil
	}

	// µWh / µW or µAh / µA; both give hours.
	if energy, ok := readInt("energy_now"); ok {
		if power, ok := readInt("power_now"); ok && power > 0 {
			r.SecondsLeft = energy * 3600 / power
			return r, nil
		}
	}
	if charge, ok := readInt("charge_now"); ok {
		if current, ok := readInt("current_now"); ok && current > 0 {
			r.SecondsLeft = charge * 3600 / current
			return r, nil
		}
	}
	// Still estimating.
	r.Unlimited = true
	return r, nil
}

// acOnline looks for a mains adapter's online flag.
func acOnline(root string) (bool, bool) {
	for _, pattern := range []string{"AC*", "ADP*"} {
		paths, _ := filepath.Glob(filepath.Join(root, pattern, "online"))
		for _, p := range paths {
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			return strings.TrimSpace(string(b)) == "1", true
		}
	}
	return false, false
}

func ratioPercent(now, full int64) float64 {
	if full <= 0 {
		return 0
	}
	return Round(100*float64(now)/float64(full), 1)
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
