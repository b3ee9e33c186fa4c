package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		width   int
		ceiling float64
		want    string
	}{
		{"empty pads", nil, 3, 100, "   "},
		{"fixed scale", []float64{0, 50, 100}, 3, 100, "▁▅█"},
		{"auto scale", []float64{1, 2, 4}, 3, 0, "▃▅█"},
		{"all zero", []float64{0, 0}, 2, 0, "▁▁"},
		{"keeps newest", []float64{100, 100, 0, 0}, 2, 100, "▁▁"},
		{"clamps above ceiling", []float64{250}, 1, 100, "█"},
		{"short series right aligned", []float64{100}, 3, 100, "  █"},
		{"zero width", []float64{1}, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sparkline(tt.values, tt.width, tt.ceiling); got != tt.want {
				t.Fatalf("sparkline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGaugeBar(t *testing.T) {
	got := gaugeBar(50, 10)
	if !strings.HasPrefix(got, "[█████░░░░░]") || !strings.HasSuffix(got, " 50.0%") {
		t.Fatalf("gaugeBar = %q", got)
	}
	if got := gaugeBar(150, 4); !strings.Contains(got, "████") || !strings.HasSuffix(got, "100.0%") {
		t.Fatalf("over 100 should clamp, got %q", got)
	}
	if got := gaugeBar(-5, 4); !strings.Contains(got, "░░░░") {
		t.Fatalf("negative should clamp, got %q", got)
	}
}

func TestTimeLeft(t *testing.T) {
	if got := timeLeft(0, true); got != "∞" {
		t.Fatalf("unlimited = %q", got)
	}
	if got := timeLeft(125, false); got != "2h 05m" {
		t.Fatalf("125 min = %q", got)
	}
	if got := timeLeft(-1, false); got != "?" {
		t.Fatalf("negative = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("nvme0n1", 10); got != "nvme0n1" {
		t.Fatalf("short string changed: %q", got)
	}
	got := truncate("Samsung SSD 980 PRO", 8)
	if utf8.RuneCountInString(got) != 8 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q", got)
	}
}
