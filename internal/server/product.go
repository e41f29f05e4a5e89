package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/gin-gonic/gin"
)

type productPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	PriceLabel  string    `json:"price_label"`
	Stock       int64     `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p productdomain.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.PriceCents.Dollars(),
		PriceLabel:  p.PriceCents.Format(),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []productdomain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func listQueryFromRequest(c *gin.Context) productdomain.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	return productdomain.ListQuery{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		SortBy:   c.Query("sort_by"),
		Page:     page,
	}
}

func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.productSvc.ListPage(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponses(products)})
}

func (s *Server) CountProductPages(c *gin.Context) {
	pages, err := s.productSvc.CountPages(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"total_pages": pages}})
}

func (s *Server) ListProductCategories(c *gin.Context) {
	categories, err := s.productSvc.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) ListActiveProducts(c *gin.Context) {
	var (
		products []productdomain.Product
		err      error
	)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		products, err = s.productSvc.ListByCategory(c.Request.Context(), category)
	} else {
		products, err = s.productSvc.ListActive(c.Request.Context())
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponses(products)})
}

func (s *Server) GetProduct(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(*product)})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Create(c.Request.Context(), productdomain.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": toProductResponse(*product)})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Update(c.Request.Context(), id, productdomain.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(*product)})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
