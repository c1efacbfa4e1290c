package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/extract"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
	"github.com/joseph-ayodele/receipt-ocr/internal/merge"
	"github.com/joseph-ayodele/receipt-ocr/internal/ocr"
	"github.com/joseph-ayodele/receipt-ocr/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "receiptocr <image> [image ...]")
		os.Exit(2)
	}

	// .env is optional; env vars win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("loading .env", "error", err)
	}
	cfg := common.LoadConfig()

	normalizer := imaging.NewNormalizer(cfg.Image, logger)
	selector := ocr.NewSelector(logger,
		ocr.NewGosseractProvider(cfg.OCR, logger),
		ocr.NewCLIProvider(cfg.OCR, logger),
	)
	extractor := extract.NewExtractor(extract.Config{}, logger)
	merger := merge.NewMerger(logger)
	proc := pipeline.NewProcessor(logger, normalizer, selector, extractor, merger)

	if !proc.IsServiceAvailable() {
		logger.Error("no ocr provider available")
		os.Exit(1)
	}
	logger.Info("ocr ready", "provider", proc.ActiveProviderName())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var pages []pipeline.Page
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("reading image", "path", path, "error", err)
			os.Exit(1)
		}
		pages = append(pages, pipeline.Page{Data: data, Filename: filepath.Base(path)})
	}

	start := time.Now()
	rec, err := proc.ProcessMulti(ctx, pages)
	if err != nil {
		logger.Error("processing failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encoding record", "error", err)
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}

	logger.Info("done",
		"pages", len(pages),
		"merchant", rec.MerchantName,
		"currency", rec.CurrencyCode,
		"overall_confidence", rec.OverallConfidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
