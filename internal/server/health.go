package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealth reports liveness and whether an API credential is configured,
// so clients can tell real extraction apart from offline mode.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"api_key_configured": s.keySet,
	})
}
