package compose

import "math"

// FitScale returns the factor that maps a logical canvas of size
// logicalW x logicalH into the available area, preserving aspect ratio.
// When clampToOne is set the canvas is never enlarged beyond 1:1.
//
// Degenerate inputs (non-positive sizes) yield 1 so that callers never
// divide by a zero scale. Callers that can have no room at all, such as a
// panel wider than its container, should keep their previous scale rather
// than call FitScale.
func FitScale(availW, availH, logicalW, logicalH float64, clampToOne bool) float64 {
	if logicalW <= 0 || logicalH <= 0 || availW <= 0 || availH <= 0 {
		return 1
	}
	s := math.Min(availW/logicalW, availH/logicalH)
	if clampToOne && s > 1 {
		s = 1
	}
	return s
}
