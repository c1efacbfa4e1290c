package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gen2brain/heic"
	"golang.org/x/image/draw"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/common"
)

// narrowRangeThreshold and narrowRangeWidening control the contrast stretch:
// a dynamic range under the threshold gets widened by the margin (clamped to
// [0,255]) before the linear rescale, so faint thermal-paper scans still
// spread across the full intensity window.
const (
	narrowRangeThreshold = 50
	narrowRangeWidening  = 20
)

// sharpenKernel amplifies stroke edges for OCR. Edge pixels are left
// unmodified rather than extrapolated.
var sharpenKernel = [3][3]int{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// Normalizer turns raw uploads into OCR-ready grayscale images.
type Normalizer struct {
	cfg    common.ImageConfig
	logger *slog.Logger
}

func NewNormalizer(cfg common.ImageConfig, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 2000
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = 2000
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = constants.DefaultAllowedExtensions
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	return &Normalizer{cfg: cfg, logger: logger}
}

// Validate checks the upload before any decoding: non-empty payload, an
// extension on the whitelist (case-insensitive), and a byte-size ceiling.
func (n *Normalizer) Validate(raw RawImage) error {
	if len(raw.Data) == 0 {
		return common.InvalidImageError("empty file")
	}
	ext := constants.NormalizeExt(filepath.Ext(raw.Filename))
	if ext == "" {
		return common.InvalidImageErrorf("filename %q has no extension", raw.Filename)
	}
	allowed := false
	for _, a := range n.cfg.AllowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return common.InvalidImageErrorf("extension %q not allowed (allowed: %s)",
			ext, strings.Join(n.cfg.AllowedExtensions, ","))
	}
	if int64(len(raw.Data)) > n.cfg.MaxUploadBytes {
		return common.InvalidImageErrorf("file exceeds maximum size %s", n.cfg.MaxUploadSize)
	}
	return nil
}

// Normalize runs the fixed preprocessing order: validate, decode,
// resize-if-needed, grayscale, contrast stretch, sharpen. When preprocessing
// is disabled by config only validation and decoding (plus the grayscale
// conversion the OCR engine needs) are performed.
func (n *Normalizer) Normalize(raw RawImage) (*NormalizedImage, error) {
	if err := n.Validate(raw); err != nil {
		return nil, err
	}

	src, err := n.decode(raw)
	if err != nil {
		return nil, err
	}

	if n.cfg.PreprocessingEnabled {
		src = n.resizeIfNeeded(src)
	}

	gray := toGray(src)

	if n.cfg.PreprocessingEnabled {
		gray = stretchContrast(gray)
		gray = sharpen(gray)
	}

	img := newNormalizedImage(gray)
	n.logger.Debug("image normalized",
		"filename", raw.Filename,
		"width", img.Width,
		"height", img.Height,
		"preprocessed", n.cfg.PreprocessingEnabled,
	)
	return img, nil
}

func (n *Normalizer) decode(raw RawImage) (image.Image, error) {
	ext := constants.NormalizeExt(filepath.Ext(raw.Filename))
	if ext == "heic" || ext == "heif" || isHEIC(raw.Data) {
		img, err := heic.Decode(bytes.NewReader(raw.Data))
		if err != nil {
			return nil, common.InvalidImageErrorf("decoding HEIC image: %v", err)
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, common.InvalidImageErrorf("decoding image: %v", err)
	}
	return img, nil
}

// isHEIC sniffs the ftyp box brands HEIC containers start with.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

// resizeIfNeeded uniformly scales the image down when either dimension
// exceeds the configured maximum, preserving aspect ratio with the smaller of
// the two scale factors. Bilinear interpolation keeps strokes smooth.
func (n *Normalizer) resizeIfNeeded(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= n.cfg.MaxWidth && h <= n.cfg.MaxHeight {
		return src
	}
	sx := float64(n.cfg.MaxWidth) / float64(w)
	sy := float64(n.cfg.MaxHeight) / float64(h)
	scale := sx
	if sy < sx {
		scale = sy
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// stretchContrast linearly rescales intensities to [0,255]. If the observed
// dynamic range is narrow the window is widened first so near-uniform scans
// are not blown out by a degenerate rescale.
func stretchContrast(src *image.Gray) *image.Gray {
	pix := src.Pix
	if len(pix) == 0 {
		return src
	}
	lo, hi := 255, 0
	for _, p := range pix {
		v := int(p)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo < narrowRangeThreshold {
		lo -= narrowRangeWidening
		hi += narrowRangeWidening
		if lo < 0 {
			lo = 0
		}
		if hi > 255 {
			hi = 255
		}
	}
	if hi <= lo {
		return src
	}
	dst := image.NewGray(src.Bounds())
	scale := 255.0 / float64(hi-lo)
	for i, p := range pix {
		v := int(float64(int(p)-lo) * scale)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		dst.Pix[i] = uint8(v)
	}
	return dst
}

// sharpen applies the fixed 3x3 kernel, leaving the one-pixel border as-is.
func sharpen(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	copy(dst.Pix, src.Pix)
	if w < 3 || h < 3 {
		return dst
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += sharpenKernel[ky+1][kx+1] * int(src.Pix[(y+ky)*src.Stride+(x+kx)])
				}
			}
			if sum < 0 {
				sum = 0
			} else if sum > 255 {
				sum = 255
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum)
		}
	}
	return dst
}
