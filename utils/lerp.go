// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp interpolates linearly between a and b.
// t is the fractional position (0 <= t < 1); t == 0 returns a exactly.
func Lerp(a, b, t float32) float32 {
	if t == 0 {
		return a
	}

	return a + (b-a)*t
}
