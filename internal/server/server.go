package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acmelabs/backoffice/internal/auth"
	authdomain "github.com/acmelabs/backoffice/internal/auth/domain"
	"github.com/acmelabs/backoffice/internal/auth/session"
	"github.com/acmelabs/backoffice/internal/config"
	"github.com/acmelabs/backoffice/internal/customer"
	customerdomain "github.com/acmelabs/backoffice/internal/customer/domain"
	"github.com/acmelabs/backoffice/internal/invoice"
	invoicedomain "github.com/acmelabs/backoffice/internal/invoice/domain"
	"github.com/acmelabs/backoffice/internal/observability"
	obslogger "github.com/acmelabs/backoffice/internal/observability/logger"
	obsmetrics "github.com/acmelabs/backoffice/internal/observability/metrics"
	obstracing "github.com/acmelabs/backoffice/internal/observability/tracing"
	"github.com/acmelabs/backoffice/internal/product"
	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/acmelabs/backoffice/internal/report"
	reportdomain "github.com/acmelabs/backoffice/internal/report/domain"
	"github.com/acmelabs/backoffice/internal/revenue"
	revenuedomain "github.com/acmelabs/backoffice/internal/revenue/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	customer.Module,
	invoice.Module,
	product.Module,
	report.Module,
	revenue.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authsvc     authdomain.Service
	sessions    *session.Manager
	genID       *snowflake.Node
	productSvc  productdomain.Service
	reportSvc   reportdomain.Service
	invoiceSvc  invoicedomain.Service
	customerSvc customerdomain.Service
	revenueSvc  revenuedomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	GenID       *snowflake.Node
	ProductSvc  productdomain.Service
	ReportSvc   reportdomain.Service
	InvoiceSvc  invoicedomain.Service
	CustomerSvc customerdomain.Service
	RevenueSvc  revenuedomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		genID:       p.GenID,
		productSvc:  p.ProductSvc,
		reportSvc:   p.ReportSvc,
		invoiceSvc:  p.InvoiceSvc,
		customerSvc: p.CustomerSvc,
		revenueSvc:  p.RevenueSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.engine

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", s.Login)
		authGroup.POST("/logout", s.Logout)
		authGroup.GET("/me", s.AuthRequired(), s.CurrentUser)
	}

	api := r.Group("/api", s.AuthRequired())
	{
		products := api.Group("/products")
		{
			products.GET("", s.ListProducts)
			products.GET("/pages", s.CountProductPages)
			products.GET("/categories", s.ListProductCategories)
			products.GET("/catalog", s.ListActiveProducts)
			products.GET("/:id", s.GetProduct)
			products.POST("", s.CreateProduct)
			products.PUT("/:id", s.UpdateProduct)
			products.DELETE("/:id", s.DeleteProduct)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/cards", s.InvoiceCardData)
			dashboard.GET("/revenue", s.ListRevenue)
			dashboard.GET("/invoices/latest", s.LatestInvoices)
			dashboard.GET("/products/cards", s.ProductCardData)
			dashboard.GET("/products/categories", s.CategoryHistogram)
			dashboard.GET("/products/low-stock", s.LowStockAlerts)
			dashboard.GET("/products/price-extremes", s.PriceExtremes)
			dashboard.GET("/products/monthly", s.MonthlyCreationTrend)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", s.ListInvoices)
			invoices.GET("/pages", s.CountInvoicePages)
			invoices.GET("/:id", s.GetInvoice)
			invoices.POST("", s.CreateInvoice)
			invoices.PUT("/:id", s.UpdateInvoice)
			invoices.DELETE("/:id", s.DeleteInvoice)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", s.ListCustomers)
			customers.GET("/filtered", s.ListFilteredCustomers)
		}
	}
}
