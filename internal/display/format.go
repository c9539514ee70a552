package display

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes scales a byte count by powers of 1024 until the value drops
// below 1024 and returns the scaled value with its unit.
func FormatBytes(n uint64) (float64, string) {
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return value, byteUnits[unit]
}

// FormatBytesIn scales a byte count into the given unit so that paired
// values, like used and total memory, share a scale.
func FormatBytesIn(n uint64, unit string) float64 {
	value := float64(n)
	for _, u := range byteUnits {
		if u == unit {
			return value
		}
		value /= 1024
	}
	return value
}

func formatPair(used, total uint64) string {
	totalValue, unit := FormatBytes(total)
	usedValue := FormatBytesIn(used, unit)
	return fmt.Sprintf("%.1f/%.1f%s", usedValue, totalValue, unit)
}
