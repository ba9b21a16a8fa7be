package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docuparse/invoice-parser/internal/common"
)

// extractPDF produces both payloads from one PDF: the first page rasterized
// to PNG (vision) and the embedded text (fallback). Each path is best-effort;
// only the loss of both is an error.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (Content, error) {
	var c Content

	tmpDir, err := os.MkdirTemp("", "ip-pdf-*")
	if err != nil {
		return c, common.WrapError(err, "create temp dir")
	}
	defer func(path string) {
		if err := os.RemoveAll(path); err != nil {
			e.logger.Warn("content.pdf.cleanup_failed", "path", path, "error", err)
		}
	}(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return c, common.WrapError(err, "write temp pdf")
	}

	// Page count doubles as a structural sanity check on the bytes.
	if pdfCtx, err := api.ReadContextFile(in); err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("pdf read context: %v", err))
	} else {
		c.Pages = pdfCtx.PageCount
	}

	if png, warn, err := e.pdfFirstPagePNG(ctx, in, tmpDir); err != nil {
		c.Warnings = append(c.Warnings, warn...)
		c.Warnings = append(c.Warnings, fmt.Sprintf("pdf raster: %v", err))
	} else {
		c.ImagePNG = png
	}

	if text, warn, err := e.pdfToText(ctx, in); err != nil {
		c.Warnings = append(c.Warnings, warn...)
		c.Warnings = append(c.Warnings, fmt.Sprintf("pdf text: %v", err))
	} else {
		c.Text = strings.TrimSpace(text)
		if c.Pages == 0 {
			// pdftotext separates pages with form feeds
			c.Pages = 1 + strings.Count(text, "\f")
		}
	}

	if len(c.ImagePNG) == 0 && c.Text == "" {
		return c, fmt.Errorf("%w: no image or text payload from pdf", common.ErrContentExtraction)
	}
	return c, nil
}

// pdfFirstPagePNG rasterizes page 1 only; the extraction prompt works off a
// single page and later pages are covered by the multi_page_invoice flag.
func (e *Extractor) pdfFirstPagePNG(ctx context.Context, in, tmpDir string) ([]byte, []string, error) {
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png -f 1 -l 1 <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", "-f", "1", "-l", "1", in, prefix)
	if err != nil {
		return nil, []string{string(errb)}, err
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("pdftoppm produced no image")
	}
	png, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, nil, err
	}
	return png, nil, nil
}

func (e *Extractor) pdfToText(ctx context.Context, in string) (string, []string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <in.pdf> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", in, "-")
	if err != nil {
		return "", []string{string(errb)}, err
	}
	return string(out), nil, nil
}
