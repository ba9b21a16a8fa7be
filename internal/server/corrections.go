package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuparse/invoice-parser/internal/common"
)

// handleCorrection records a human correction for a stored invoice.
func (s *Server) handleCorrection(c *gin.Context) {
	invoiceID := c.PostForm("invoice_id")
	corrected := c.PostForm("corrected_data")
	if invoiceID == "" || corrected == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invoice_id and corrected_data are required"})
		return
	}
	userID := c.PostForm("user_id")
	notes := c.PostForm("correction_notes")

	corr, err := s.recorder.Record(c.Request.Context(), invoiceID, []byte(corrected), userID, notes)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, common.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error("correction.failed", "invoice_id", invoiceID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record correction"})
		}
		return
	}

	c.JSON(http.StatusOK, corr)
}
