package constants

// ConfidenceLevel is the coarse rating attached to each extracted field.
type ConfidenceLevel string

// Stable values (serialized as-is in API responses).
const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// Score maps a coarse level to a numeric score used for weighted averages.
func (c ConfidenceLevel) Score() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.6
	case ConfidenceLow:
		return 0.3
	default:
		return 0.0
	}
}

// FieldWeights are the relative weights of each field when computing the
// overall extraction confidence. Fields not listed use DefaultFieldWeight.
var FieldWeights = map[string]float64{
	"amount":   3.0,
	"date":     2.0,
	"merchant": 1.0,
	"tax":      0.5,
}

// DefaultFieldWeight applies to confidence-map entries without an explicit weight.
const DefaultFieldWeight = 1.0
