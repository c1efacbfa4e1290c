package constants

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAllowedExtensions holds the default allowed file extensions for receipt uploads.
var DefaultAllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "heic"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ParseExtensionList splits a comma-separated extension list into normalized entries.
// An empty list falls back to the defaults.
func ParseExtensionList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return DefaultAllowedExtensions
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		ext := NormalizeExt(strings.TrimSpace(part))
		if ext != "" {
			out = append(out, ext)
		}
	}
	if len(out) == 0 {
		return DefaultAllowedExtensions
	}
	return out
}

// ParseSizeString parses human-readable sizes like "10MB" or "512KB" into bytes.
// Multipliers are 1024-based. A bare number is taken as bytes.
func ParseSizeString(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}
	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		mult = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		mult = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		mult = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return n * mult, nil
}
