package ui

import (
	"fmt"
	"math"
	"strings"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

const (
	gaugeFill  = "█"
	gaugeEmpty = "░"
)

// sparkline draws the newest width points of values. ceiling fixes the top of
// the scale (100 for percentages); zero scales to the largest point shown.
func sparkline(values []float64, width int, ceiling float64) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	top := ceiling
	if top <= 0 {
		for _, v := range values {
			top = math.Max(top, v)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		level := 0
		if top > 0 && v > 0 {
			level = int(math.Round(v / top * float64(len(sparkLevels)-1)))
		}
		level = max(0, min(level, len(sparkLevels)-1))
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}

func gaugeBar(pct float64, width int) string {
	pct = math.Max(0, math.Min(pct, 100))
	filled := min(int((pct/100)*float64(width)), width)
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

// timeLeft formats battery minutes; the unlimited sentinel reads as ∞.
func timeLeft(minutes int64, unlimited bool) string {
	if unlimited {
		return "∞"
	}
	if minutes < 0 {
		return "?"
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
