package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport streams all stored invoices as an XLSX workbook.
func (s *Server) handleExport(c *gin.Context) {
	data, err := s.exporter.ExportInvoicesXLSX(c.Request.Context())
	if err != nil {
		s.logger.Error("export.failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export invoices"})
		return
	}
	name := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxMIME, data)
}
