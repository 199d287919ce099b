package audio

import (
	"fmt"
	"math"
)

// Mix blends a and b linearly: blend 0 is all a, blend 1 is all b.
// The result is as long as the longer input; the shorter one is treated as
// silent past its end.
func Mix(a, b []int16, blend float64) ([]int16, error) {
	if math.IsNaN(blend) || blend < 0 || blend > 1 {
		return nil, fmt.Errorf("%w: blend %g outside [0, 1]", ErrConfig, blend)
	}

	result := make([]int16, max(len(a), len(b)))
	for i := range result {
		var x, y float64
		if i < len(a) {
			x = float64(a[i])
		}
		if i < len(b) {
			y = float64(b[i])
		}
		result[i] = ToSample(x*(1-blend) + y*blend)
	}

	return result, nil
}
