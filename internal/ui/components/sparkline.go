package components

import "strings"

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a row of block characters, scaled to the
// min/max of the input. Empty input renders as an empty string.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = (v - lo) * (len(sparkBlocks) - 1) / span
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}
