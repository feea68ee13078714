package audio

import "math"

// RMS computes the root-mean-square energy of a PCM frame.
// Returns 0 for an empty frame.
func RMS(samples []int16) int {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		f := float64(s)
		sum += f * f
	}

	return int(math.Sqrt(sum / float64(len(samples))))
}
