package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuparse/invoice-parser/constants"
	"github.com/docuparse/invoice-parser/internal/common"
)

// Content is the document-to-content result. ImagePNG feeds vision-mode
// extraction; Text feeds the text-mode fallback. Either may be empty, never
// both on a nil error.
type Content struct {
	ImagePNG []byte
	Text     string
	Pages    int
	Warnings []string
	Duration time.Duration
}

// Config for the content extractor. Binary names default to the tools on PATH.
type Config struct {
	Pdftoppm  string // first-page rasterization for vision payloads
	Pdftotext string // embedded-text extraction for the text fallback
	Tesseract string // optional OCR for image uploads

	DPI         int  // rasterization DPI, default 200
	MaxImageDim int  // downscale bound for vision payloads, default 2200
	OCRImages   bool // run tesseract over image uploads for a text payload
}

// Extractor turns uploaded bytes into a vision payload and/or a text payload.
// It is a pure transform over the provided bytes: temp files only, no network.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	if cfg.MaxImageDim <= 0 {
		cfg.MaxImageDim = 2200
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract picks a strategy based on the declared file extension. Fails with
// ErrUnsupportedFileType for anything outside pdf/png/jpg/jpeg, and with
// ErrContentExtraction when no payload at all could be produced.
func (e *Extractor) Extract(ctx context.Context, data []byte, ext string) (Content, error) {
	start := time.Now()
	norm := constants.NormalizeExt(ext)
	e.logger.Debug("content.extract.start", "ext", norm, "bytes", len(data))

	var c Content
	var err error
	switch constants.MapExtToFormat(norm) {
	case constants.PDF:
		c, err = e.extractPDF(ctx, data)
	case constants.IMAGE:
		c, err = e.extractImage(ctx, data)
	default:
		return Content{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFileType, norm)
	}
	c.Duration = time.Since(start)
	if err != nil {
		return c, err
	}

	e.logger.Info("content.extract.ok",
		"ext", norm,
		"image_bytes", len(c.ImagePNG),
		"text_len", len(c.Text),
		"pages", c.Pages,
		"warnings", len(c.Warnings),
		"elapsed_ms", c.Duration.Milliseconds(),
	)
	return c, nil
}
