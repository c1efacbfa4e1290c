package common

import (
	"os"
	"strconv"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// Config holds all application configuration
type Config struct {
	Image ImageConfig
	OCR   OCRConfig
}

// ImageConfig holds image validation and preprocessing configuration
type ImageConfig struct {
	PreprocessingEnabled bool
	MaxWidth             int
	MaxHeight            int
	AllowedExtensions    []string
	MaxUploadBytes       int64
	MaxUploadSize        string // original size string, kept for error messages
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	TesseractLang string
	TessdataDir   string
	PSM           int    // e.g., 6 is good for uniform block of text
	OEM           int    // 1 = LSTM; leave 0 to use default
	Tesseract     string // CLI binary name or absolute path; if empty -> "tesseract"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	sizeStr := getEnv("MAX_UPLOAD_SIZE", "10MB")
	maxBytes, err := constants.ParseSizeString(sizeStr)
	if err != nil {
		sizeStr = "10MB"
		maxBytes = 10 << 20
	}
	return &Config{
		Image: ImageConfig{
			PreprocessingEnabled: getEnvAsBool("IMAGE_PREPROCESSING_ENABLED", true),
			MaxWidth:             getEnvAsInt("IMAGE_MAX_WIDTH", 2000),
			MaxHeight:            getEnvAsInt("IMAGE_MAX_HEIGHT", 2000),
			AllowedExtensions:    constants.ParseExtensionList(getEnv("ALLOWED_EXTENSIONS", "")),
			MaxUploadBytes:       maxBytes,
			MaxUploadSize:        sizeStr,
		},
		OCR: OCRConfig{
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			PSM:           getEnvAsInt("TESSERACT_PSM", 6),
			OEM:           getEnvAsInt("TESSERACT_OEM", 0),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
