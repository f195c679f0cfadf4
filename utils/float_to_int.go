// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM converts a sample in [-1,1] to a signed integer of the given bit
// depth, clamping out-of-range input. Positive full scale maps to 2^(bits-1)-1.
func FloatToPCM(x float64, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	full := float64(int64(1)<<(bitDepth-1)) - 1
	return int(x * full)
}

// PCMToFloat is the inverse of FloatToPCM, scaling by 2^(bits-1).
func PCMToFloat(v int, bitDepth int) float64 {
	return float64(v) / float64(int64(1)<<(bitDepth-1))
}
