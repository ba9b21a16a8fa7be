package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docuparse/invoice-parser/internal/common"
	"github.com/docuparse/invoice-parser/internal/content"
	"github.com/docuparse/invoice-parser/internal/invoice"
	"github.com/docuparse/invoice-parser/internal/llm"
	"github.com/docuparse/invoice-parser/internal/store"
)

// Source tags where a returned record came from, so callers and tests can
// tell a real extraction from placeholder data instead of sniffing values.
type Source string

const (
	SourceVision Source = "vision"
	SourceText   Source = "text"
	SourceMock   Source = "mock"
)

// Result is the outcome of one extraction. FallbackReason is set only when
// Source is mock and names the failure that forced the fallback.
type Result struct {
	InvoiceID      string
	Record         *invoice.InvoiceData
	Source         Source
	FallbackReason string
}

// ContentExtractor is the document-to-content adapter the ladder depends on.
type ContentExtractor interface {
	Extract(ctx context.Context, data []byte, ext string) (content.Content, error)
}

// Config holds ladder behavior knobs.
type Config struct {
	// MockFallback degrades extraction failures to the built-in sample
	// record instead of an error, keeping uploads non-blocking. When false,
	// ladder exhaustion surfaces to the caller.
	MockFallback bool
	Temperature  float32
	MaxTokens    int
}

// Service drives the extraction fallback ladder: vision, then text, then the
// built-in sample record. With MockFallback on, the only terminal failure is
// being unable to produce the sample record itself.
type Service struct {
	logger    *slog.Logger
	content   ContentExtractor
	completer llm.Completer // nil when no API credential is configured
	store     store.InvoiceStore
	cfg       Config
}

func NewService(logger *slog.Logger, ce ContentExtractor, completer llm.Completer, st store.InvoiceStore, cfg Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	return &Service{logger: logger, content: ce, completer: completer, store: st, cfg: cfg}
}

// Process runs the ladder for one upload and stores the resulting record
// under a fresh invoice id. filename supplies the declared extension.
func (s *Service) Process(ctx context.Context, data []byte, filename string) (Result, error) {
	start := time.Now()
	ext := filepath.Ext(filename)
	s.logger.Info("extract.start", "filename", filename, "bytes", len(data))

	// No credential is a supported offline/demo mode, not an error.
	if s.completer == nil {
		return s.storeMock("api key not configured")
	}

	cnt, err := s.content.Extract(ctx, data, ext)
	if err != nil {
		s.logger.Warn("extract.content.failed", "filename", filename, "error", err)
		return s.fallback(fmt.Errorf("%w: %v", common.ErrContentExtraction, err))
	}
	for _, w := range cnt.Warnings {
		s.logger.Warn("extract.content.warning", "filename", filename, "warning", w)
	}

	var resp string
	var source Source
	var lastErr error

	if len(cnt.ImagePNG) > 0 {
		resp, err = s.completer.Complete(ctx, llm.Request{
			System:      llm.SystemInstruction,
			Prompt:      llm.InvoicePrompt,
			ImagePNG:    cnt.ImagePNG,
			Temperature: s.cfg.Temperature,
			MaxTokens:   s.cfg.MaxTokens,
		})
		if err == nil {
			source = SourceVision
		} else {
			lastErr = err
			s.logger.Warn("extract.vision.failed", "filename", filename, "error", err)
		}
	}

	if resp == "" && cnt.Text != "" {
		resp, err = s.completer.Complete(ctx, llm.Request{
			System:      llm.SystemInstruction,
			Prompt:      llm.InvoicePrompt + "\n\nINVOICE CONTENT:\n" + cnt.Text,
			Temperature: s.cfg.Temperature,
			MaxTokens:   s.cfg.MaxTokens,
		})
		if err == nil {
			source = SourceText
		} else {
			lastErr = err
			s.logger.Warn("extract.text.failed", "filename", filename, "error", err)
		}
	}

	if resp == "" {
		if lastErr == nil {
			lastErr = fmt.Errorf("%w: no usable payload", common.ErrContentExtraction)
		}
		return s.fallback(lastErr)
	}

	raw, err := llm.ExtractJSONObject(resp)
	if err != nil {
		s.logger.Warn("extract.parse.failed", "filename", filename, "error", err)
		return s.fallback(err)
	}
	rec, err := invoice.Coerce(raw)
	if err != nil {
		s.logger.Warn("extract.validate.failed", "filename", filename, "error", err)
		return s.fallback(err)
	}

	if cnt.Pages > 1 {
		rec.Flags.MultiPageInvoice = true
	}

	id := uuid.New().String()
	s.store.Put(id, rec)
	s.logger.Info("extract.ok",
		"invoice_id", id,
		"source", string(source),
		"pages", cnt.Pages,
		"low_confidence_fields", len(rec.LowConfidenceFields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{InvoiceID: id, Record: rec, Source: source}, nil
}

// fallback resolves a ladder failure: the sample record when MockFallback is
// on, the original error otherwise.
func (s *Service) fallback(cause error) (Result, error) {
	if !s.cfg.MockFallback {
		return Result{}, cause
	}
	return s.storeMock(cause.Error())
}

func (s *Service) storeMock(reason string) (Result, error) {
	rec, err := invoice.MockInvoice()
	if err != nil {
		// Cannot even produce placeholder data; this is terminal.
		return Result{}, common.WrapError(err, "mock fallback")
	}
	id := uuid.New().String()
	s.store.Put(id, rec)
	s.logger.Info("extract.fallback.mock", "invoice_id", id, "reason", reason)
	return Result{InvoiceID: id, Record: rec, Source: SourceMock, FallbackReason: reason}, nil
}
