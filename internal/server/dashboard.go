package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) InvoiceCardData(c *gin.Context) {
	cards, err := s.invoiceSvc.CardData(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cards})
}

func (s *Server) LatestInvoices(c *gin.Context) {
	latest, err := s.invoiceSvc.Latest(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": latest})
}

func (s *Server) ListRevenue(c *gin.Context) {
	rows, err := s.revenueSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) ProductCardData(c *gin.Context) {
	cards, err := s.reportSvc.CardData(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cards})
}

func (s *Server) CategoryHistogram(c *gin.Context) {
	buckets, err := s.reportSvc.CategoryHistogram(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": buckets})
}

func (s *Server) LowStockAlerts(c *gin.Context) {
	alerts, err := s.reportSvc.LowStockAlerts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

func (s *Server) PriceExtremes(c *gin.Context) {
	extremes, err := s.reportSvc.PriceExtremes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": extremes})
}

func (s *Server) MonthlyCreationTrend(c *gin.Context) {
	points, err := s.reportSvc.MonthlyCreationTrend(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points})
}
