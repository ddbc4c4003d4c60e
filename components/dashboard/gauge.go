package dashboard

const (
	scoreMin = 0
	scoreMax = 100
)

// Gauge slice names.
const (
	GaugeScore     = "Score"
	GaugeRemaining = "Remaining"
)

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// GaugeSlices derives the two gauge wedges from a single score. The score is
// clamped first, so Score+Remaining is always 100.
func GaugeSlices(score int) []GaugeSlice {
	score = ClampScore(score)
	return []GaugeSlice{
		{Name: GaugeScore, Value: score, Color: ColorBlue},
		{Name: GaugeRemaining, Value: scoreMax - score, Color: ColorGray},
	}
}
