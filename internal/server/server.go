package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/docuparse/invoice-parser/internal/corrections"
	"github.com/docuparse/invoice-parser/internal/export"
	"github.com/docuparse/invoice-parser/internal/extract"
	"github.com/docuparse/invoice-parser/internal/store"
)

// Server wires the HTTP surface to the extraction pipeline and store.
type Server struct {
	logger     *slog.Logger
	extractor  *extract.Service
	store      store.InvoiceStore
	recorder   *corrections.Recorder
	exporter   *export.Service
	uploadsDir string
	keySet     bool
}

func New(logger *slog.Logger, extractor *extract.Service, st store.InvoiceStore, recorder *corrections.Recorder, exporter *export.Service, uploadsDir string, keySet bool) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:     logger,
		extractor:  extractor,
		store:      st,
		recorder:   recorder,
		exporter:   exporter,
		uploadsDir: uploadsDir,
		keySet:     keySet,
	}
}

// Routes builds the gin engine with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsCfg))

	r.Static("/uploads", s.uploadsDir)

	api := r.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.GET("/invoice/:id", s.handleGetInvoice)
		api.GET("/invoices/export", s.handleExport)
		api.POST("/corrections", s.handleCorrection)
		api.GET("/health", s.handleHealth)
	}
	return r
}
