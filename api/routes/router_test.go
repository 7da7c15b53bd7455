package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/organics-storefront/internal/cart"
	"github.com/angelmondragon/organics-storefront/internal/checkout"
	"github.com/angelmondragon/organics-storefront/pkg/config"
	"github.com/angelmondragon/organics-storefront/pkg/metrics"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
)

type stubCatalog struct{}

func (stubCatalog) ListByCategory(context.Context, string) ([]storefrontapi.Product, error) {
	return []storefrontapi.Product{{ID: "h1", Name: "Honey", Price: decimal.NewFromInt(450)}}, nil
}

func (stubCatalog) Search(context.Context, string) ([]storefrontapi.Product, error) {
	return nil, nil
}

func (stubCatalog) FindProduct(_ context.Context, productID string) (*storefrontapi.Product, error) {
	return &storefrontapi.Product{ID: productID, Name: "Honey", Price: decimal.NewFromInt(450), Discount: decimal.NewFromInt(10)}, nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(context.Context, storefrontapi.OrderRequest, string) (*storefrontapi.Order, error) {
	return &storefrontapi.Order{ID: "o1"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *cart.Store) {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Env: config.AppEnvDev},
		Storage:  config.StorageConfig{Backend: config.StorageMemory},
		Checkout: config.CheckoutConfig{DeliveryFee: 40},
	}

	reg := prometheus.NewRegistry()
	backend := storage.NewMemoryStorage()
	store, err := cart.NewStore(cart.StoreParams{Storage: backend, Metrics: metrics.NewCartMetrics(reg)})
	require.NoError(t, err)
	store.Load(context.Background())

	svc, err := checkout.NewService(checkout.Params{Cart: store, Orders: stubOrders{}, DeliveryFee: decimal.NewFromInt(40)})
	require.NoError(t, err)

	return NewRouter(cfg, nil, backend, store, svc, stubCatalog{}, reg), store
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/ready", "").Code)
}

func TestCartFlowThroughRouter(t *testing.T) {
	h, store := newTestRouter(t)

	resp := serve(h, http.MethodPost, "/api/cart/items", `{"productId":"a","unitPrice":100,"discountPercent":10,"quantity":2}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	resp = serve(h, http.MethodPatch, "/api/cart/items/a", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 5, store.TotalItemCount())

	resp = serve(h, http.MethodGet, "/api/cart/count", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"count":5}}`, resp.Body.String())

	resp = serve(h, http.MethodDelete, "/api/cart/items/a", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Zero(t, store.TotalItemCount())
}

func TestCheckoutThroughRouterClearsCart(t *testing.T) {
	h, store := newTestRouter(t)
	serve(h, http.MethodPost, "/api/cart/items", `{"productId":"a","unitPrice":100,"attributes":{"name":"Honey"}}`)

	body := `{
		"customer": {"id": "u1", "fullName": "Asha Rao", "email": "asha@example.com"},
		"shippingAddress": {"houseNo": "12", "village": "Kothur", "district": "Medak", "pincode": "502001", "state": "Telangana"}
	}`
	resp := serve(h, http.MethodPost, "/api/checkout", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Empty(t, store.Lines())
}

func TestCatalogRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	resp := serve(h, http.MethodGet, "/api/products?category=honey", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"_id":"h1"`)

	resp = serve(h, http.MethodGet, "/api/search?query=x", "")
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	serve(h, http.MethodPost, "/api/cart/items", `{"productId":"a","unitPrice":10}`)

	resp := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `cart_mutations_total{op="add"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/unknown", "").Code)
}

func TestCartCatalogItemRoute(t *testing.T) {
	h, store := newTestRouter(t)

	resp := serve(h, http.MethodPost, "/api/cart/catalog-items", `{"productId":"h1","quantity":2}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "h1", lines[0].ProductID)
	assert.Equal(t, 10, lines[0].DiscountPercent)
	assert.Equal(t, "Honey", lines[0].Attribute("name"))
	assert.True(t, decimal.NewFromInt(810).Equal(store.Subtotal(nil)))
}
