package types

import "math"

const floatCmpEpsilon = 1e-6

// Returns true if all vector components differ by at most threshold.
func ApproxEqual(v1, v2 Vec3, threshold float32) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(v1[i]-v2[i])) > float64(threshold) {
			return false
		}
	}
	return true
}
