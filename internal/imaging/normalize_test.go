package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testNormalizer() *Normalizer {
	return NewNormalizer(common.ImageConfig{
		PreprocessingEnabled: true,
		MaxWidth:             1000,
		MaxHeight:            1000,
		AllowedExtensions:    []string{"jpg", "jpeg", "png", "gif"},
		MaxUploadBytes:       1 << 20,
		MaxUploadSize:        "1MB",
	}, nil)
}

func TestValidateExtensionWhitelist(t *testing.T) {
	n := testNormalizer()
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, 10, 10)))

	for _, name := range []string{"a.png", "b.jpg", "c.JPEG", "d.GIF"} {
		if err := n.Validate(RawImage{Data: data, Filename: name}); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"a.bmp", "b.pdf", "c.txt", "noext"} {
		err := n.Validate(RawImage{Data: data, Filename: name})
		if !errors.Is(err, common.ErrInvalidImage) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidImage", name, err)
		}
	}
}

func TestValidateRejectsEmptyAndOversized(t *testing.T) {
	n := testNormalizer()

	if err := n.Validate(RawImage{Data: nil, Filename: "a.png"}); !errors.Is(err, common.ErrInvalidImage) {
		t.Errorf("empty file: got %v, want ErrInvalidImage", err)
	}
	big := make([]byte, (1<<20)+1)
	if err := n.Validate(RawImage{Data: big, Filename: "a.png"}); !errors.Is(err, common.ErrInvalidImage) {
		t.Errorf("oversized file: got %v, want ErrInvalidImage", err)
	}
}

func TestNormalizeRejectsUndecodable(t *testing.T) {
	n := testNormalizer()
	_, err := n.Normalize(RawImage{Data: []byte("definitely not an image"), Filename: "a.png"})
	if !errors.Is(err, common.ErrInvalidImage) {
		t.Fatalf("Normalize(garbage) = %v, want ErrInvalidImage", err)
	}
}

func TestNormalizeResizesOversizedImage(t *testing.T) {
	n := testNormalizer()
	src := image.NewGray(image.Rect(0, 0, 2000, 1000))
	out, err := n.Normalize(RawImage{Data: encodePNG(t, src), Filename: "big.png"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out.Width != 1000 || out.Height != 500 {
		t.Errorf("got %dx%d, want 1000x500 (aspect preserved, min scale factor)", out.Width, out.Height)
	}
}

func TestNormalizeKeepsSmallImageDimensions(t *testing.T) {
	n := testNormalizer()
	src := image.NewGray(image.Rect(0, 0, 400, 300))
	out, err := n.Normalize(RawImage{Data: encodePNG(t, src), Filename: "small.png"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out.Width != 400 || out.Height != 300 {
		t.Errorf("got %dx%d, want 400x300", out.Width, out.Height)
	}
}

func TestStretchContrastBoundsAndMonotonicity(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 16, 1))
	// narrow band of intensities around mid-gray
	for i := range src.Pix {
		src.Pix[i] = uint8(100 + i)
	}
	dst := stretchContrast(src)

	for i := 1; i < len(dst.Pix); i++ {
		if dst.Pix[i] < dst.Pix[i-1] {
			t.Fatalf("pixel ordering not preserved at %d: %d < %d", i, dst.Pix[i], dst.Pix[i-1])
		}
	}
	lo, hi := dst.Pix[0], dst.Pix[len(dst.Pix)-1]
	if hi-lo <= src.Pix[len(src.Pix)-1]-src.Pix[0] {
		t.Errorf("dynamic range not widened: got [%d,%d]", lo, hi)
	}
}

func TestStretchContrastUniformImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	dst := stretchContrast(src)
	// uniform input must survive the widened-window rescale unchanged in shape
	for i := 1; i < len(dst.Pix); i++ {
		if dst.Pix[i] != dst.Pix[0] {
			t.Fatalf("uniform image became non-uniform at %d", i)
		}
	}
}

func TestSharpenLeavesEdgesUnmodified(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	dst := sharpen(src)
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			edge := x == 0 || y == 0 || x == b.Dx()-1 || y == b.Dy()-1
			if edge && dst.Pix[y*dst.Stride+x] != src.Pix[y*src.Stride+x] {
				t.Fatalf("edge pixel (%d,%d) modified", x, y)
			}
		}
	}
}

func TestNormalizeSkipsPreprocessingWhenDisabled(t *testing.T) {
	n := NewNormalizer(common.ImageConfig{
		PreprocessingEnabled: false,
		MaxWidth:             100,
		MaxHeight:            100,
		AllowedExtensions:    []string{"png"},
		MaxUploadBytes:       1 << 20,
	}, nil)
	src := image.NewGray(image.Rect(0, 0, 300, 200))
	out, err := n.Normalize(RawImage{Data: encodePNG(t, src), Filename: "a.png"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	// no resize when preprocessing is off, even past the max dimensions
	if out.Width != 300 || out.Height != 200 {
		t.Errorf("got %dx%d, want 300x200", out.Width, out.Height)
	}
}
