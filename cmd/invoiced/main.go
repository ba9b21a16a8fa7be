package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/docuparse/invoice-parser/internal/common"
	"github.com/docuparse/invoice-parser/internal/content"
	"github.com/docuparse/invoice-parser/internal/corrections"
	"github.com/docuparse/invoice-parser/internal/export"
	"github.com/docuparse/invoice-parser/internal/extract"
	"github.com/docuparse/invoice-parser/internal/llm"
	"github.com/docuparse/invoice-parser/internal/llm/openai"
	"github.com/docuparse/invoice-parser/internal/server"
	"github.com/docuparse/invoice-parser/internal/store"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Server.UploadsDir, 0o755); err != nil {
		logger.Error("failed to create uploads dir", "dir", cfg.Server.UploadsDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var completer llm.Completer
	if cfg.LLM.APIKey != "" {
		completer = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			VisionModel: cfg.LLM.VisionModel,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, serving mock extractions")
	}

	extractor := content.NewExtractor(content.Config{
		Pdftoppm:    cfg.Content.Pdftoppm,
		Pdftotext:   cfg.Content.Pdftotext,
		Tesseract:   cfg.Content.Tesseract,
		DPI:         cfg.Content.DPI,
		MaxImageDim: cfg.Content.MaxImageDim,
		OCRImages:   cfg.Content.OCRImages,
	}, logger)

	st := store.NewMemoryStore()
	pipeline := extract.NewService(logger, extractor, completer, st, extract.Config{
		MockFallback: cfg.Extract.MockFallback,
		Temperature:  cfg.LLM.Temperature,
		MaxTokens:    cfg.LLM.MaxTokens,
	})
	recorder := corrections.NewRecorder(st, logger)
	exporter := export.NewService(st, logger)

	srv := server.New(logger, pipeline, st, recorder, exporter, cfg.Server.UploadsDir, cfg.LLM.APIKey != "")

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "uploads_dir", cfg.Server.UploadsDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
