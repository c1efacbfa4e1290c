package constants

// ImageQuality grades how OCR-friendly a normalized image is.
type ImageQuality string

// Stable values (store these exact strings).
const (
	QualityGood ImageQuality = "GOOD"
	QualityFair ImageQuality = "FAIR"
	QualityPoor ImageQuality = "POOR"
)

// Rank orders qualities so that the worst grade can win during page merge.
// Lower is worse.
func (q ImageQuality) Rank() int {
	switch q {
	case QualityPoor:
		return 0
	case QualityFair:
		return 1
	case QualityGood:
		return 2
	default:
		return 0
	}
}
