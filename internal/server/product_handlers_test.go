package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acmelabs/backoffice/internal/actorctx"
	"github.com/acmelabs/backoffice/internal/auth/session"
	productdomain "github.com/acmelabs/backoffice/internal/product/domain"
	"github.com/acmelabs/backoffice/internal/validation"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "valid-token"})
	return req
}

func TestProductRoutesRequireSession(t *testing.T) {
	srv := newTestServer(testServerOptions{})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unauthorized", resp.Error.Type)
}

func TestListProductsPassesQueryParams(t *testing.T) {
	var got productdomain.ListQuery
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			listPageFn: func(ctx context.Context, query productdomain.ListQuery) ([]productdomain.Product, error) {
				got = query
				return []productdomain.Product{}, nil
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodGet,
		"/api/products?query=cable&category=electronics&status=active&sort_by=price-desc&page=2", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cable", got.Query)
	assert.Equal(t, "electronics", got.Category)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "price-desc", got.SortBy)
	assert.Equal(t, 2, got.Page)
}

func TestListProductsInjectsActor(t *testing.T) {
	var actor snowflake.ID
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			listPageFn: func(ctx context.Context, query productdomain.ListQuery) ([]productdomain.Product, error) {
				actor, _ = actorctx.ActorIDFromContext(ctx)
				return nil, nil
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodGet, "/api/products", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, snowflake.ID(42), actor)
}

func TestCreateProductValidationPayload(t *testing.T) {
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			createFn: func(ctx context.Context, input productdomain.ProductInput) (*productdomain.Product, error) {
				verrs := &validation.Errors{}
				verrs.Add("name", "too_short", "Product name must be at least 3 characters.")
				verrs.Add("price", "not_positive", "Please enter a price greater than $0.")
				return nil, verrs
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodPost, "/api/products",
		`{"name":"ab","description":"d","category":"c","price":"0","stock":1,"is_active":true}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Type   string                  `json:"type"`
			Errors []validation.FieldError `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 2)
	assert.Equal(t, "name", resp.Error.Errors[0].Field)
	assert.Equal(t, "price", resp.Error.Errors[1].Field)
}

func TestDeleteMissingProductMapsToNotFound(t *testing.T) {
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			deleteFn: func(ctx context.Context, id snowflake.ID) error {
				return productdomain.ErrNotFound
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/products/123456789", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductStoreFailureMapsToServiceUnavailable(t *testing.T) {
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			getFn: func(ctx context.Context, id snowflake.ID) (*productdomain.Product, error) {
				return nil, productdomain.ErrStoreUnavailable
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodGet, "/api/products/123456789", ""))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateProductReturnsCreated(t *testing.T) {
	node := mustNode(9)
	srv := newTestServer(testServerOptions{
		product: &fakeProductService{
			createFn: func(ctx context.Context, input productdomain.ProductInput) (*productdomain.Product, error) {
				return &productdomain.Product{
					ID:          node.Generate(),
					Name:        input.Name,
					Description: input.Description,
					Category:    input.Category,
					PriceCents:  1999,
					Stock:       input.Stock,
					IsActive:    input.IsActive,
				}, nil
			},
		},
	})

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, authedRequest(http.MethodPost, "/api/products",
		`{"name":"USB-C Cable","description":"Braided","category":"electronics","price":"19.99","stock":3,"is_active":true}`))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data productResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USB-C Cable", resp.Data.Name)
	assert.Equal(t, "19.99", resp.Data.Price)
	assert.Equal(t, "$19.99", resp.Data.PriceLabel)
}

func TestGetProductRejectsUnparseableID(t *testing.T) {
	srv := newTestServer(testServerOptions{})

	for _, id := range []string{"0", "not-a-number", "%20"} {
		w := httptest.NewRecorder()
		srv.engine.ServeHTTP(w, authedRequest(http.MethodGet, "/api/products/"+id, ""))

		assert.Equal(t, http.StatusNotFound, w.Code, id)

		var resp struct {
			Error struct {
				Type string `json:"type"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), id)
		assert.Equal(t, "not_found", resp.Error.Type, id)
	}
}
