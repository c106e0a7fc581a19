package domain

import "context"

// ProductCatalog defines the interface for the food product database
type ProductCatalog interface {
	// LookupProduct returns the product for a barcode, or ErrProductNotFound.
	LookupProduct(ctx context.Context, barcode string) (*ProductRecord, error)
	// SearchProducts returns the raw products matching a free-text query.
	SearchProducts(ctx context.Context, query string) ([]SearchResultItem, error)
}

// DrugLabelRegistry defines the interface for the drug-label database
type DrugLabelRegistry interface {
	// HasActiveIngredient reports whether any label lists the ingredient.
	HasActiveIngredient(ctx context.Context, ingredient string) (bool, error)
}
