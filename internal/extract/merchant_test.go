package extract

import (
	"strings"
	"testing"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

func TestExtractMerchantKnownChain(t *testing.T) {
	lines := strings.Split("GSTIN 22AAAAA0000A1Z5\nSTAR BAZAAR PVT LTD\nMumbai 400001\nTOTAL: 450.00", "\n")
	got, level, _ := extractMerchant(lines)
	if got != "STAR BAZAAR PVT LTD" {
		t.Errorf("merchant = %q, want %q", got, "STAR BAZAAR PVT LTD")
	}
	if level != constants.ConfidenceHigh {
		t.Errorf("level = %s, want HIGH", level)
	}
}

func TestExtractMerchantLegalSuffix(t *testing.T) {
	lines := strings.Split("Sharma Traders Pvt Ltd\n15/03/2024\nTOTAL 99.00", "\n")
	got, level, _ := extractMerchant(lines)
	if got != "Sharma Traders Pvt Ltd" {
		t.Errorf("merchant = %q, want %q", got, "Sharma Traders Pvt Ltd")
	}
	if level != constants.ConfidenceHigh {
		t.Errorf("level = %s, want HIGH", level)
	}
}

func TestExtractMerchantFallbackHeaderLine(t *testing.T) {
	lines := strings.Split("Corner Kirana Shop\n123456 2 20.00 40.00\n15/03/2024", "\n")
	got, level, _ := extractMerchant(lines)
	if got != "Corner Kirana Shop" {
		t.Errorf("merchant = %q, want %q", got, "Corner Kirana Shop")
	}
	if level != constants.ConfidenceLow {
		t.Errorf("level = %s, want LOW", level)
	}
}

func TestExtractMerchantNotFound(t *testing.T) {
	lines := strings.Split("15/03/2024\n450.00\n123456 1 10.00 10.00", "\n")
	got, level, reason := extractMerchant(lines)
	if got != "" {
		t.Errorf("merchant = %q, want empty (never invent a value)", got)
	}
	if level != constants.ConfidenceLow || reason == "" {
		t.Errorf("level/reason = %s/%q, want LOW with a note", level, reason)
	}
}

func TestExtractMerchantSkipsDigitHeavyLines(t *testing.T) {
	lines := strings.Split("A1B2C3D4E5F6\nDevi Stores\n450.00", "\n")
	got, _, _ := extractMerchant(lines)
	if got != "Devi Stores" {
		t.Errorf("merchant = %q, want %q", got, "Devi Stores")
	}
}
