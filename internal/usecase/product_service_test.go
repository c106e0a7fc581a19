package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/foodcheck/web/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockProductCatalog is a mock implementation of domain.ProductCatalog
type MockProductCatalog struct {
	product      *domain.ProductRecord
	lookupError  error
	searchResult []domain.SearchResultItem
	searchError  error
	lookupCalls  []string
	searchCalls  []string
}

func (m *MockProductCatalog) LookupProduct(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	m.lookupCalls = append(m.lookupCalls, barcode)
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	if m.product == nil {
		return nil, domain.ErrProductNotFound
	}
	// Hand out a copy like a real decoder would
	p := *m.product
	return &p, nil
}

func (m *MockProductCatalog) SearchProducts(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("returns found outcome with record", func(t *testing.T) {
		catalog := &MockProductCatalog{product: &domain.ProductRecord{Name: "Whole Milk", NutritionGrade: "B"}}
		svc := NewProductService(catalog, nil)

		got := svc.Lookup(ctx, " 3274080005003 ")

		if !got.Found() {
			t.Fatalf("Status = %v, want found", got.Status)
		}
		if got.Product.Name != "Whole Milk" {
			t.Errorf("Name = %s, want Whole Milk", got.Product.Name)
		}
		if got.Barcode != "3274080005003" {
			t.Errorf("Barcode = %q, want trimmed barcode", got.Barcode)
		}
		if got.Err != nil {
			t.Errorf("Err = %v, want nil", got.Err)
		}
	})

	t.Run("returns not found without a record", func(t *testing.T) {
		catalog := &MockProductCatalog{}
		svc := NewProductService(catalog, nil)

		got := svc.Lookup(ctx, "0000")

		if !got.NotFound() {
			t.Errorf("Status = %v, want not_found", got.Status)
		}
		if got.Product != nil {
			t.Errorf("Product = %+v, want nil", got.Product)
		}
	})

	t.Run("returns unavailable on upstream failure", func(t *testing.T) {
		catalog := &MockProductCatalog{lookupError: fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable)}
		svc := NewProductService(catalog, nil)

		got := svc.Lookup(ctx, "0000")

		if !got.Unavailable() {
			t.Errorf("Status = %v, want unavailable", got.Status)
		}
		if !errors.Is(got.Err, domain.ErrUpstreamUnavailable) {
			t.Errorf("Err = %v, want ErrUpstreamUnavailable", got.Err)
		}
		if got.Product != nil {
			t.Error("expected no partial record on failure")
		}
	})

	t.Run("returns unavailable on malformed response", func(t *testing.T) {
		catalog := &MockProductCatalog{lookupError: domain.ErrMalformedResponse}
		svc := NewProductService(catalog, nil)

		if got := svc.Lookup(ctx, "0000"); !got.Unavailable() {
			t.Errorf("Status = %v, want unavailable", got.Status)
		}
	})

	t.Run("skips upstream for blank barcode", func(t *testing.T) {
		catalog := &MockProductCatalog{}
		svc := NewProductService(catalog, nil)

		got := svc.Lookup(ctx, "   ")

		if !got.NotFound() {
			t.Errorf("Status = %v, want not_found", got.Status)
		}
		if len(catalog.lookupCalls) != 0 {
			t.Errorf("lookup calls = %v, want none", catalog.lookupCalls)
		}
	})

	t.Run("is idempotent for identical upstream data", func(t *testing.T) {
		catalog := &MockProductCatalog{product: &domain.ProductRecord{Name: "Yogurt", Allergens: "Milk"}}
		svc := NewProductService(catalog, nil)

		first := svc.Lookup(ctx, "42")
		second := svc.Lookup(ctx, "42")

		if !reflect.DeepEqual(first, second) {
			t.Errorf("first = %+v, second = %+v, want equal", first, second)
		}
	})

	t.Run("logs outcome with barcode field", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		catalog := &MockProductCatalog{}
		svc := NewProductService(catalog, zap.New(core))

		svc.Lookup(ctx, "777")

		entries := logs.FilterMessage("no product found for barcode").All()
		if len(entries) != 1 {
			t.Fatalf("log entries = %d, want 1", len(entries))
		}
		if entries[0].ContextMap()["barcode"] != "777" {
			t.Errorf("barcode field = %v, want 777", entries[0].ContextMap()["barcode"])
		}
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("passes results through unchanged", func(t *testing.T) {
		items := []domain.SearchResultItem{
			{"code": "1", "product_name": "Oat milk", "extra": []any{"x"}},
		}
		catalog := &MockProductCatalog{searchResult: items}
		svc := NewProductService(catalog, nil)

		got := svc.Search(ctx, "  oat   milk ")

		if got.Status != domain.SearchOK {
			t.Fatalf("Status = %v, want ok", got.Status)
		}
		if !reflect.DeepEqual(got.Products, items) {
			t.Errorf("Products = %v, want %v", got.Products, items)
		}
		if len(catalog.searchCalls) != 1 || catalog.searchCalls[0] != "oat milk" {
			t.Errorf("search calls = %v, want [oat milk]", catalog.searchCalls)
		}
	})

	t.Run("returns empty list and failed status on upstream error", func(t *testing.T) {
		catalog := &MockProductCatalog{searchError: fmt.Errorf("%w: status 500", domain.ErrUpstreamStatus)}
		svc := NewProductService(catalog, nil)

		got := svc.Search(ctx, "milk")

		if !got.Failed() {
			t.Errorf("Status = %v, want failed", got.Status)
		}
		if got.Products == nil || len(got.Products) != 0 {
			t.Errorf("Products = %v, want empty non-nil list", got.Products)
		}
		if !errors.Is(got.Err, domain.ErrUpstreamStatus) {
			t.Errorf("Err = %v, want ErrUpstreamStatus", got.Err)
		}
	})

	t.Run("distinguishes empty results from failure", func(t *testing.T) {
		catalog := &MockProductCatalog{searchResult: nil}
		svc := NewProductService(catalog, nil)

		got := svc.Search(ctx, "zzzz")

		if !got.Empty() {
			t.Errorf("Empty() = false, want true (status %v)", got.Status)
		}
		if got.Failed() {
			t.Error("Failed() = true, want false")
		}
	})

	t.Run("skips upstream for blank query", func(t *testing.T) {
		catalog := &MockProductCatalog{}
		svc := NewProductService(catalog, nil)

		got := svc.Search(ctx, " \t ")

		if len(catalog.searchCalls) != 0 {
			t.Errorf("search calls = %v, want none", catalog.searchCalls)
		}
		if got.Products == nil {
			t.Error("Products = nil, want empty list")
		}
	})
}
