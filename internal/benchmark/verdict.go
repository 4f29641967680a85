package benchmark

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// TimeDigits is the number of decimals kept for execution times.
	TimeDigits = 3
	// MemoryDigits is the number of decimals kept for memory figures.
	MemoryDigits = 2
)

// Round rounds v to digits decimal places using the shortest correctly
// rounded decimal form. Round(Round(v, d), d) == Round(v, d).
func Round(v float64, digits int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// SpeedRatio returns timeA / timeB. A zero timeB yields +Inf, including when
// timeA is zero as well.
func SpeedRatio(timeA, timeB float64) float64 {
	if timeB == 0 {
		return math.Inf(1)
	}
	return timeA / timeB
}

// SpeedVerdict describes which of the two labels ran faster and by how much.
func SpeedVerdict(labelA, labelB string, timeA, timeB float64) string {
	ratio := SpeedRatio(timeA, timeB)
	switch {
	case ratio > 1:
		if math.IsInf(ratio, 1) {
			return fmt.Sprintf("%s is infinitely faster", labelB)
		}
		return fmt.Sprintf("%s is %.1f× faster", labelB, ratio)
	case ratio < 1:
		if ratio == 0 {
			return fmt.Sprintf("%s is infinitely faster", labelA)
		}
		return fmt.Sprintf("%s is %.1f× faster", labelA, 1/ratio)
	default:
		return "same speed"
	}
}

// MemoryVerdict describes labelB's memory relative to memA. The percentage
// base is always memA, so the figure is not symmetric between the labels.
func MemoryVerdict(labelB string, memA, memB float64) string {
	switch {
	case memA > memB:
		return fmt.Sprintf("%s uses %.1f%% less", labelB, (memA-memB)/memA*100)
	case memB > memA:
		if memA == 0 {
			return fmt.Sprintf("%s uses infinitely more", labelB)
		}
		return fmt.Sprintf("%s uses %.1f%% more", labelB, (memB-memA)/memA*100)
	default:
		return "same memory usage"
	}
}
