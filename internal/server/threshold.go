package server

const (
	minSensitivityLevel = 1
	maxSensitivityLevel = 40

	// Cutoffs for the motion score a client may report before elimination.
	// Level 1 is the most forgiving, level 40 the strictest.
	maxCutoff = 8.0
	minCutoff = 0.3
)

// cutoff maps a sensitivity level to the motion-score threshold above which a
// participant is eliminated. Linear between maxCutoff at level 1 and
// minCutoff at level 40; out-of-range levels are clamped.
func cutoff(level int) float64 {
	level = clampInt(level, minSensitivityLevel, maxSensitivityLevel)
	step := (maxCutoff - minCutoff) / float64(maxSensitivityLevel-minSensitivityLevel)
	return maxCutoff - float64(level-1)*step
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
