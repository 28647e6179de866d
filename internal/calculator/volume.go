package calculator

import "math"

// VolumeRatio divides each volume by its moving average. Entries whose
// average is undefined or zero are undefined.
func VolumeRatio(volumes, avg []float64) []float64 {
	out := undefined(len(volumes))
	for i := range volumes {
		if i >= len(avg) || math.IsNaN(avg[i]) || avg[i] == 0 {
			continue
		}
		out[i] = volumes[i] / avg[i]
	}
	return out
}
