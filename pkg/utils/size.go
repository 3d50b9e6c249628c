package utils

import "fmt"

var units = []struct {
	threshold int64
	suffix    string
}{
	{1 << 40, "TB"},
	{1 << 30, "GB"},
	{1 << 20, "MB"},
	{1 << 10, "KB"},
}

// HumanizeBytes formats a byte count into a readable string, e.g. "1.50 MB".
func HumanizeBytes(b int64) string {
	for _, u := range units {
		if b >= u.threshold {
			return fmt.Sprintf("%.2f %s", float64(b)/float64(u.threshold), u.suffix)
		}
	}
	return fmt.Sprintf("%d B", b)
}

// HumanizeBytesCompact is HumanizeBytes without spaces and with single-letter
// units, for dense list columns: 1536 -> "1.50K".
func HumanizeBytesCompact(b int64) string {
	for _, u := range units {
		if b >= u.threshold {
			return fmt.Sprintf("%.2f%c", float64(b)/float64(u.threshold), u.suffix[0])
		}
	}
	return fmt.Sprintf("%dB", b)
}
