package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleGetInvoice returns the current stored record for an invoice id.
func (s *Server) handleGetInvoice(c *gin.Context) {
	id := c.Param("id")
	rec, err := s.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
