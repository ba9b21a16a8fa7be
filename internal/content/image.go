package content

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/docuparse/invoice-parser/internal/common"
)

// extractImage normalizes an uploaded image into a PNG vision payload,
// downscaling oversized scans so the base64 body stays within API limits.
// A text payload via tesseract is optional and best-effort.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (Content, error) {
	var c Content

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("%w: decode image: %v", common.ErrContentExtraction, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > e.cfg.MaxImageDim || bounds.Dy() > e.cfg.MaxImageDim {
		img = imaging.Fit(img, e.cfg.MaxImageDim, e.cfg.MaxImageDim, imaging.Lanczos)
		c.Warnings = append(c.Warnings,
			fmt.Sprintf("image downscaled from %dx%d", bounds.Dx(), bounds.Dy()))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return c, fmt.Errorf("%w: encode png: %v", common.ErrContentExtraction, err)
	}
	c.ImagePNG = buf.Bytes()
	c.Pages = 1

	if e.cfg.OCRImages {
		if text, warn, err := e.imageOCR(ctx, c.ImagePNG); err != nil {
			c.Warnings = append(c.Warnings, warn...)
			c.Warnings = append(c.Warnings, fmt.Sprintf("image ocr: %v", err))
		} else {
			c.Text = strings.TrimSpace(text)
		}
	}
	return c, nil
}

func (e *Extractor) imageOCR(ctx context.Context, png []byte) (string, []string, error) {
	tmpDir, err := os.MkdirTemp("", "ip-ocr-*")
	if err != nil {
		return "", nil, err
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			e.logger.Warn("content.ocr.cleanup_failed", "path", path, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "page.png")
	if err := os.WriteFile(in, png, 0o600); err != nil {
		return "", nil, err
	}

	// tesseract <file> stdout
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, in, "stdout")
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}
