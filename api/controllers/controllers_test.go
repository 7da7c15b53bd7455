package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	checkoutsvc "github.com/angelmondragon/organics-storefront/internal/checkout"
	"github.com/angelmondragon/organics-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/pricing"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
	"github.com/angelmondragon/organics-storefront/pkg/types"
)

type stubCheckoutService struct {
	quote     checkoutsvc.Quote
	result    *checkoutsvc.Result
	err       error
	lastInput checkoutsvc.PlaceOrderInput
}

func (s *stubCheckoutService) Quote() checkoutsvc.Quote { return s.quote }

func (s *stubCheckoutService) PlaceOrder(ctx context.Context, input checkoutsvc.PlaceOrderInput) (*checkoutsvc.Result, error) {
	s.lastInput = input
	return s.result, s.err
}

type stubCatalog struct {
	products     []storefrontapi.Product
	err          error
	lastCategory string
	lastQuery    string
}

func (s *stubCatalog) ListByCategory(ctx context.Context, category string) ([]storefrontapi.Product, error) {
	s.lastCategory = category
	return s.products, s.err
}

func (s *stubCatalog) Search(ctx context.Context, query string) ([]storefrontapi.Product, error) {
	s.lastQuery = query
	return s.products, s.err
}

func (s *stubCatalog) FindProduct(ctx context.Context, productID string) (*storefrontapi.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == productID {
			return &s.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

const checkoutBody = `{
	"customer": {"id": "u1", "fullName": "Asha Rao", "email": "asha@example.com"},
	"shippingAddress": {"houseNo": "12", "village": "Kothur", "district": "Medak", "pincode": "502001", "state": "Telangana"},
	"paymentMethod": "COD"
}`

func TestCheckoutSuccess(t *testing.T) {
	svc := &stubCheckoutService{result: &checkoutsvc.Result{
		Order:          &storefrontapi.Order{ID: "o1"},
		IdempotencyKey: "idem-1",
		PaymentMethod:  checkoutsvc.PaymentCOD,
		Summary:        pricing.Summarize(decimal.NewFromInt(230), decimal.NewFromInt(40)),
	}}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody))
	req.Header.Set(idempotencyHeader, "idem-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.IdempotencyKey != "idem-1" {
		t.Fatalf("idempotency key not forwarded: %q", svc.lastInput.IdempotencyKey)
	}
	if svc.lastInput.ShippingAddress.District != "Medak" {
		t.Fatalf("address not forwarded: %+v", svc.lastInput.ShippingAddress)
	}

	var envelope struct {
		Data checkoutsvc.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Order == nil || envelope.Data.Order.ID != "o1" {
		t.Fatalf("unexpected order %+v", envelope.Data.Order)
	}
}

func TestCheckoutMissingAddressField(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := Checkout(svc, nil)

	body := strings.Replace(checkoutBody, `"pincode": "502001"`, `"pincode": ""`, 1)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["shippingAddress.pincode"] != "is required" {
		t.Fatalf("expected pincode detail, got %v", envelope.Error.Details)
	}
}

func TestCheckoutServiceError(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "online payments are currently unavailable")}
	handler := Checkout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "online payments") {
		t.Fatalf("expected service message in body, got %s", resp.Body.String())
	}
}

func TestCheckoutQuote(t *testing.T) {
	svc := &stubCheckoutService{quote: checkoutsvc.Quote{ItemCount: 3}}
	resp := httptest.NewRecorder()
	CheckoutQuote(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/checkout/quote", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"itemCount":3`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestCatalogProductsForwardsCategory(t *testing.T) {
	catalog := &stubCatalog{products: []storefrontapi.Product{{ID: "h1", Name: "Honey"}}}
	resp := httptest.NewRecorder()
	CatalogProducts(catalog, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products?category=%20honey%20", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if catalog.lastCategory != "honey" {
		t.Fatalf("unexpected category %q", catalog.lastCategory)
	}
	if !strings.Contains(resp.Body.String(), `"_id":"h1"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestCatalogSearchEmptyResults(t *testing.T) {
	catalog := &stubCatalog{}
	resp := httptest.NewRecorder()
	CatalogSearch(catalog, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/search?query=ghee", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if catalog.lastQuery != "ghee" {
		t.Fatalf("unexpected query %q", catalog.lastQuery)
	}
	if !strings.Contains(resp.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty list, got %s", resp.Body.String())
	}
}

func TestCatalogUpstreamFailure(t *testing.T) {
	catalog := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "search products failed")}
	resp := httptest.NewRecorder()
	CatalogSearch(catalog, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/search?query=ghee", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}, Storage: config.StorageConfig{Backend: "memory"}}

	resp := httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{}).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get(envHeader) != config.AppEnvDev {
		t.Fatalf("env header missing")
	}

	resp = httptest.NewRecorder()
	HealthReady(cfg, nil, stubPinger{err: errors.New("disk gone")}).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvProd}}
	resp := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
