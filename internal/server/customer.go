package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListCustomers(c *gin.Context) {
	fields, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": fields})
}

func (s *Server) ListFilteredCustomers(c *gin.Context) {
	rows, err := s.customerSvc.ListFiltered(c.Request.Context(), c.Query("query"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
