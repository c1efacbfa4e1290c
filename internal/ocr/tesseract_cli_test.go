package ocr

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
)

// stubRunner scripts command outcomes per invocation: the first entry answers
// the smoke test, later entries answer extraction runs.
type stubRunner struct {
	outputs []stubOutput
	calls   [][]string
}

type stubOutput struct {
	stdout string
	stderr string
	err    error
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	i := len(r.calls) - 1
	if i >= len(r.outputs) {
		i = len(r.outputs) - 1
	}
	out := r.outputs[i]
	return []byte(out.stdout), []byte(out.stderr), out.err
}

func testImage() *imaging.NormalizedImage {
	g := image.NewGray(image.Rect(0, 0, 8, 8))
	return &imaging.NormalizedImage{Gray: g, Width: 8, Height: 8}
}

func TestCLIProviderExtractText(t *testing.T) {
	runner := &stubRunner{outputs: []stubOutput{
		{stdout: "tesseract 5.3.0"},
		{stdout: "STAR BAZAAR\r\nTOTAL:  ₹450.00\n"},
	}}
	p := newCLIProvider(common.OCRConfig{TesseractLang: "eng", PSM: 6}, runner, nil)

	if !p.IsAvailable() {
		t.Fatalf("provider unavailable after passing smoke test: %s", p.UnavailableReason())
	}

	res, err := p.ExtractText(context.Background(), testImage())
	if err != nil {
		t.Fatalf("ExtractText error: %v", err)
	}
	if !res.Success {
		t.Fatalf("result not successful: %+v", res)
	}
	if res.Text != "STAR BAZAAR\nTOTAL: ₹450.00" {
		t.Errorf("text = %q, want normalized output", res.Text)
	}
	if res.Confidence <= 50 {
		t.Errorf("confidence = %v, want boost from currency and total signals", res.Confidence)
	}

	// extraction call shape: <bin> <file> stdout -l eng --psm 6
	last := runner.calls[len(runner.calls)-1]
	if last[0] != "tesseract" || last[2] != "stdout" {
		t.Errorf("unexpected command: %v", last)
	}
	joined := strings.Join(last, " ")
	if !strings.Contains(joined, "-l eng") || !strings.Contains(joined, "--psm 6") {
		t.Errorf("missing flags in command: %v", last)
	}
}

func TestCLIProviderSmokeTestFailure(t *testing.T) {
	runner := &stubRunner{outputs: []stubOutput{
		{err: errors.New("executable file not found")},
	}}
	p := newCLIProvider(common.OCRConfig{}, runner, nil)

	if p.IsAvailable() {
		t.Fatal("provider available despite failed smoke test")
	}
	if p.UnavailableReason() == "" {
		t.Error("no reason recorded for the availability flip")
	}
	_, err := p.ExtractText(context.Background(), testImage())
	if !errors.Is(err, common.ErrOCRProcessing) {
		t.Errorf("error = %v, want ErrOCRProcessing from unavailable provider", err)
	}
}

func TestCLIProviderEngineErrorFlipsAvailability(t *testing.T) {
	runner := &stubRunner{outputs: []stubOutput{
		{stdout: "tesseract 5.3.0"},
		{stderr: "Error in pixReadStream", err: errors.New("exit status 1")},
	}}
	p := newCLIProvider(common.OCRConfig{}, runner, nil)

	res, err := p.ExtractText(context.Background(), testImage())
	if err == nil || res.Success {
		t.Fatalf("want failure, got res=%+v err=%v", res, err)
	}
	if p.IsAvailable() {
		t.Error("provider still available after a fatal engine error")
	}
}

func TestCLIProviderNilImage(t *testing.T) {
	runner := &stubRunner{outputs: []stubOutput{{stdout: "tesseract 5.3.0"}}}
	p := newCLIProvider(common.OCRConfig{}, runner, nil)

	if _, err := p.ExtractText(context.Background(), nil); !errors.Is(err, common.ErrOCRProcessing) {
		t.Errorf("error = %v, want ErrOCRProcessing for nil image", err)
	}
}
