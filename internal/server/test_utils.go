package server

import (
	"context"
	"time"

	authdomain "github.com/acmelabs/backoffice/internal/auth/domain"
	"github.com/acmelabs/backoffice/internal/auth/session"
	"github.com/acmelabs/backoffice/internal/config"
	customerdomain "github.com/acmelabs/backoffice/internal/customer/domain"
	invoicedomain "github.com/acmelabs/backoffice/internal/invoice/domain"
	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	reportdomain "github.com/acmelabs/backoffice/internal/report/domain"
	revenuedomain "github.com/acmelabs/backoffice/internal/revenue/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// Hand-rolled fakes keep handler tests independent of the database.

type fakeAuthService struct {
	loginFn        func(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error)
	authenticateFn func(ctx context.Context, rawToken string) (*authdomain.Session, error)
	userByIDFn     func(ctx context.Context, id snowflake.ID) (*authdomain.User, error)
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	return nil, authdomain.ErrUserExists
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, req)
	}
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error { return nil }

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, rawToken)
	}
	return nil, authdomain.ErrInvalidSession
}

func (f *fakeAuthService) UserByID(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	if f.userByIDFn != nil {
		return f.userByIDFn(ctx, id)
	}
	return nil, authdomain.ErrUserNotFound
}

type fakeProductService struct {
	createFn     func(ctx context.Context, input productdomain.ProductInput) (*productdomain.Product, error)
	updateFn     func(ctx context.Context, id snowflake.ID, input productdomain.ProductInput) (*productdomain.Product, error)
	deleteFn     func(ctx context.Context, id snowflake.ID) error
	getFn        func(ctx context.Context, id snowflake.ID) (*productdomain.Product, error)
	listPageFn   func(ctx context.Context, query productdomain.ListQuery) ([]productdomain.Product, error)
	countPagesFn func(ctx context.Context, query productdomain.ListQuery) (int, error)
}

func (f *fakeProductService) Create(ctx context.Context, input productdomain.ProductInput) (*productdomain.Product, error) {
	return f.createFn(ctx, input)
}

func (f *fakeProductService) Update(ctx context.Context, id snowflake.ID, input productdomain.ProductInput) (*productdomain.Product, error) {
	return f.updateFn(ctx, id, input)
}

func (f *fakeProductService) Delete(ctx context.Context, id snowflake.ID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeProductService) Get(ctx context.Context, id snowflake.ID) (*productdomain.Product, error) {
	return f.getFn(ctx, id)
}

func (f *fakeProductService) ListPage(ctx context.Context, query productdomain.ListQuery) ([]productdomain.Product, error) {
	return f.listPageFn(ctx, query)
}

func (f *fakeProductService) CountPages(ctx context.Context, query productdomain.ListQuery) (int, error) {
	return f.countPagesFn(ctx, query)
}

func (f *fakeProductService) Categories(ctx context.Context) ([]string, error) {
	return []string{"accessories", "electronics"}, nil
}

func (f *fakeProductService) ListActive(ctx context.Context) ([]productdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductService) ListByCategory(ctx context.Context, category string) ([]productdomain.Product, error) {
	return nil, nil
}

type fakeReportService struct{}

func (fakeReportService) CategoryHistogram(ctx context.Context) ([]reportdomain.CategoryBucket, error) {
	return nil, nil
}

func (fakeReportService) LowStockAlerts(ctx context.Context) ([]reportdomain.LowStockAlert, error) {
	return nil, nil
}

func (fakeReportService) PriceExtremes(ctx context.Context) (*reportdomain.PriceExtremes, error) {
	return &reportdomain.PriceExtremes{}, nil
}

func (fakeReportService) MonthlyCreationTrend(ctx context.Context) ([]reportdomain.TrendPoint, error) {
	return nil, nil
}

func (fakeReportService) CardData(ctx context.Context) (*reportdomain.CardData, error) {
	return &reportdomain.CardData{InventoryValue: "$0.00"}, nil
}

type fakeInvoiceService struct{}

func (fakeInvoiceService) Create(ctx context.Context, input invoicedomain.InvoiceInput) (*invoicedomain.Invoice, error) {
	return nil, invoicedomain.ErrStoreUnavailable
}

func (fakeInvoiceService) Update(ctx context.Context, id snowflake.ID, input invoicedomain.InvoiceInput) (*invoicedomain.Invoice, error) {
	return nil, invoicedomain.ErrNotFound
}

func (fakeInvoiceService) Delete(ctx context.Context, id snowflake.ID) error {
	return invoicedomain.ErrNotFound
}

func (fakeInvoiceService) Get(ctx context.Context, id snowflake.ID) (*invoicedomain.InvoiceForm, error) {
	return nil, invoicedomain.ErrNotFound
}

func (fakeInvoiceService) Latest(ctx context.Context) ([]invoicedomain.LatestInvoice, error) {
	return nil, nil
}

func (fakeInvoiceService) ListFiltered(ctx context.Context, query string, page int) ([]invoicedomain.TableRow, error) {
	return nil, nil
}

func (fakeInvoiceService) CountPages(ctx context.Context, query string) (int, error) {
	return 0, nil
}

func (fakeInvoiceService) CardData(ctx context.Context) (*invoicedomain.CardData, error) {
	return &invoicedomain.CardData{TotalPaid: "$0.00", TotalPending: "$0.00"}, nil
}

type fakeCustomerService struct{}

func (fakeCustomerService) List(ctx context.Context) ([]customerdomain.Field, error) {
	return nil, nil
}

func (fakeCustomerService) ListFiltered(ctx context.Context, query string) ([]customerdomain.TableRow, error) {
	return nil, nil
}

type fakeRevenueService struct{}

func (fakeRevenueService) List(ctx context.Context) ([]revenuedomain.Revenue, error) {
	return nil, nil
}

type testServerOptions struct {
	auth    *fakeAuthService
	product *fakeProductService
}

func newTestServer(opts testServerOptions) *Server {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	cfg := config.Config{Environment: "test"}

	authsvc := opts.auth
	if authsvc == nil {
		userID := snowflake.ID(42)
		authsvc = &fakeAuthService{
			authenticateFn: func(ctx context.Context, rawToken string) (*authdomain.Session, error) {
				if rawToken == "valid-token" {
					return &authdomain.Session{
						ID:        snowflake.ID(1),
						UserID:    userID,
						ExpiresAt: time.Now().Add(time.Hour),
					}, nil
				}
				return nil, authdomain.ErrInvalidSession
			},
		}
	}

	productSvc := opts.product
	if productSvc == nil {
		productSvc = &fakeProductService{}
	}

	return NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		Authsvc:     authsvc,
		Sessions:    session.NewManager(cfg),
		GenID:       mustNode(7),
		ProductSvc:  productSvc,
		ReportSvc:   fakeReportService{},
		InvoiceSvc:  fakeInvoiceService{},
		CustomerSvc: fakeCustomerService{},
		RevenueSvc:  fakeRevenueService{},
	})
}

func mustNode(id int64) *snowflake.Node {
	node, err := snowflake.NewNode(id)
	if err != nil {
		panic(err)
	}
	return node
}
