package server

import (
	"net/http"
	"strconv"

	invoicedomain "github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

type invoicePayload struct {
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

type invoiceResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	rows, err := s.invoiceSvc.ListFiltered(c.Request.Context(), c.Query("query"), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) CountInvoicePages(c *gin.Context) {
	pages, err := s.invoiceSvc.CountPages(c.Request.Context(), c.Query("query"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"total_pages": pages}})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	form, err := s.invoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.InvoiceInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": toInvoiceResponse(invoice)})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req invoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Update(c.Request.Context(), id, invoicedomain.InvoiceInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Status:     req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toInvoiceResponse(invoice)})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toInvoiceResponse(invoice *invoicedomain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         invoice.ID.String(),
		CustomerID: invoice.CustomerID.String(),
		Amount:     invoice.AmountCents.Dollars(),
		Status:     invoice.Status,
		Date:       invoice.Date.Format("2006-01-02"),
	}
}
