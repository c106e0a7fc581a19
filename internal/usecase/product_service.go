package usecase

import (
	"context"
	"errors"

	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/logging"
	"go.uber.org/zap"
)

// ProductService performs barcode lookups and product searches
type ProductService struct {
	catalog domain.ProductCatalog
	logger  *zap.Logger
}

// NewProductService creates a new product service with dependencies
func NewProductService(catalog domain.ProductCatalog, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		catalog: catalog,
		logger:  logger,
	}
}

// Lookup resolves a barcode into a tagged outcome. Upstream failures become
// LookupUnavailable; they are never returned as errors.
func (s *ProductService) Lookup(ctx context.Context, barcode string) domain.LookupOutcome {
	barcode = NormalizeBarcode(barcode)
	log := logging.FromContext(ctx, s.logger).With(
		zap.String("op", "product_lookup"),
		zap.String("barcode", barcode),
	)

	if barcode == "" {
		return domain.LookupOutcome{Status: domain.LookupNotFound}
	}

	record, err := s.catalog.LookupProduct(ctx, barcode)
	switch {
	case err == nil:
		log.Info("product found", zap.String("product_name", record.Name))
		return domain.LookupOutcome{Barcode: barcode, Status: domain.LookupFound, Product: record}
	case errors.Is(err, domain.ErrProductNotFound):
		log.Info("no product found for barcode")
		return domain.LookupOutcome{Barcode: barcode, Status: domain.LookupNotFound}
	default:
		log.Warn("product lookup failed", zap.Error(err))
		return domain.LookupOutcome{Barcode: barcode, Status: domain.LookupUnavailable, Err: err}
	}
}

// Search runs a free-text product search. A failed search yields an empty
// product list together with SearchFailed so callers can tell it apart
// from a search without hits.
func (s *ProductService) Search(ctx context.Context, query string) domain.SearchOutcome {
	query = NormalizeQuery(query)
	log := logging.FromContext(ctx, s.logger).With(
		zap.String("op", "product_search"),
		zap.String("query", query),
	)

	if query == "" {
		return domain.SearchOutcome{Status: domain.SearchOK, Products: []domain.SearchResultItem{}}
	}

	products, err := s.catalog.SearchProducts(ctx, query)
	if err != nil {
		log.Warn("product search failed", zap.Error(err))
		return domain.SearchOutcome{
			Query:    query,
			Status:   domain.SearchFailed,
			Products: []domain.SearchResultItem{},
			Err:      err,
		}
	}
	if products == nil {
		products = []domain.SearchResultItem{}
	}

	log.Info("search results found", zap.Int("count", len(products)))
	return domain.SearchOutcome{Query: query, Status: domain.SearchOK, Products: products}
}
