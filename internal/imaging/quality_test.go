package imaging

import (
	"image"
	"testing"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

func grayImage(w, h int) *NormalizedImage {
	return newNormalizedImage(image.NewGray(image.Rect(0, 0, w, h)))
}

func TestAssessQuality(t *testing.T) {
	tests := []struct {
		name string
		img  *NormalizedImage
		want constants.ImageQuality
	}{
		{"nil image", nil, constants.QualityPoor},
		{"tiny", grayImage(100, 100), constants.QualityPoor},
		{"narrow width", grayImage(150, 900), constants.QualityPoor},
		{"mid-size", grayImage(640, 480), constants.QualityFair},
		{"exactly 800x600", grayImage(800, 600), constants.QualityGood},
		{"large", grayImage(1600, 1200), constants.QualityGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessQuality(tt.img); got != tt.want {
				t.Errorf("AssessQuality = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAssessQualityIsPure(t *testing.T) {
	img := grayImage(640, 480)
	first := AssessQuality(img)
	second := AssessQuality(img)
	if first != second {
		t.Errorf("AssessQuality not idempotent: %s then %s", first, second)
	}
}
