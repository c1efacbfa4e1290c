package ocr

import (
	"log/slog"
	"os"
	"path/filepath"
)

// osTessdataDirs are the fixed OS-specific install locations probed last.
var osTessdataDirs = []string{
	"/usr/share/tesseract-ocr/5/tessdata",
	"/usr/share/tesseract-ocr/4.00/tessdata",
	"/usr/share/tesseract-ocr/tessdata",
	"/usr/local/share/tessdata",
	"/usr/share/tessdata",
	"/opt/homebrew/share/tessdata",
	`C:\Program Files\Tesseract-OCR\tessdata`,
}

// ResolveTessdataDir probes for trained-data in order: the explicitly
// configured path, conventional build output paths, a directory next to the
// executable, then fixed OS install locations. If none resolve it returns ""
// and the engine falls back to its own defaults; that is logged, not fatal.
func ResolveTessdataDir(explicit string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	var candidates []string
	if explicit != "" {
		candidates = append(candidates, explicit)
	}
	candidates = append(candidates, "./tessdata", "./build/tessdata")
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "tessdata"))
	}
	candidates = append(candidates, osTessdataDirs...)

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			logger.Debug("tessdata resolved", "dir", dir)
			return dir
		}
	}
	logger.Warn("tessdata not found; using engine defaults", "explicit", explicit)
	return ""
}
