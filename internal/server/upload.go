package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docuparse/invoice-parser/constants"
	"github.com/docuparse/invoice-parser/internal/invoice"
)

const unsupportedTypeMsg = "Only PDF and image files (PNG, JPG, JPEG) are supported"

// handleUpload accepts a multipart document, saves it under the uploads dir
// and runs extraction. The saved file is removed again when extraction fails.
func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.fail(c, http.StatusBadRequest, "No file provided")
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
	if !constants.IsAllowedExtension(ext) {
		s.fail(c, http.StatusBadRequest, unsupportedTypeMsg)
		return
	}

	src, err := fh.Open()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	storedName := uuid.New().String() + "." + ext
	storedPath := filepath.Join(s.uploadsDir, storedName)
	if err := os.WriteFile(storedPath, data, 0o644); err != nil {
		s.logger.Error("upload.save.failed", "path", storedPath, "error", err)
		s.fail(c, http.StatusInternalServerError, "Failed to save upload")
		return
	}
	s.logger.Info("upload.received", "filename", fh.Filename, "stored", storedName, "bytes", len(data))

	res, err := s.extractor.Process(c.Request.Context(), data, fh.Filename)
	if err != nil {
		s.removeUpload(storedPath)
		s.logger.Error("upload.extract.failed", "filename", fh.Filename, "error", err)
		s.fail(c, http.StatusInternalServerError, "Failed to process invoice: "+err.Error())
		return
	}

	filePath := "/uploads/" + storedName
	c.JSON(http.StatusOK, invoice.UploadResponse{
		Success:   true,
		Data:      res.Record,
		InvoiceID: &res.InvoiceID,
		FilePath:  &filePath,
	})
}

func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, invoice.UploadResponse{Success: false, Error: &msg})
}

func (s *Server) removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("upload.cleanup.failed", "path", path, "error", err)
	}
}
