package imaging

import "github.com/joseph-ayodele/receipt-ocr/constants"

// AssessQuality grades OCR fitness from dimensions alone. It is a pure
// function of (width, height): POOR if either dimension is under 200px,
// GOOD at 800x600 or better, FAIR in between. A nil image is always POOR.
func AssessQuality(img *NormalizedImage) constants.ImageQuality {
	if img == nil || img.Gray == nil {
		return constants.QualityPoor
	}
	if img.Width < 200 || img.Height < 200 {
		return constants.QualityPoor
	}
	if img.Width >= 800 && img.Height >= 600 {
		return constants.QualityGood
	}
	return constants.QualityFair
}
