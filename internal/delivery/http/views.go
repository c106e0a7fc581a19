package http

import "github.com/foodcheck/web/internal/domain"

// IndexView is the view model of the lookup/search page.
// Lookup and Search are nil when the operation was not attempted.
type IndexView struct {
	Title            string
	Barcode          string
	Query            string
	Lookup           *domain.LookupOutcome
	Search           *domain.SearchOutcome
	ComplianceReport []string
	CurrentYear      int
}

// PageView is the view model of the static pages
type PageView struct {
	Title       string
	CurrentYear int
}
