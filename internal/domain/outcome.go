package domain

// LookupStatus tags the result of a barcode lookup
type LookupStatus int

const (
	LookupFound LookupStatus = iota + 1
	LookupNotFound
	LookupUnavailable
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	case LookupUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// LookupOutcome is the result of ProductService.Lookup.
// Product is set only when Status is LookupFound; Err only when LookupUnavailable.
type LookupOutcome struct {
	Barcode string
	Status  LookupStatus
	Product *ProductRecord
	Err     error
}

// Found reports whether a product record is present
func (o LookupOutcome) Found() bool {
	return o.Status == LookupFound && o.Product != nil
}

// NotFound reports whether upstream answered that the barcode is unknown
func (o LookupOutcome) NotFound() bool {
	return o.Status == LookupNotFound
}

// Unavailable reports whether the product database could not be reached or parsed
func (o LookupOutcome) Unavailable() bool {
	return o.Status == LookupUnavailable
}

// SearchStatus tags the result of a product search
type SearchStatus int

const (
	SearchOK SearchStatus = iota + 1
	SearchFailed
)

func (s SearchStatus) String() string {
	switch s {
	case SearchOK:
		return "ok"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SearchOutcome is the result of ProductService.Search.
// Products is never nil; it is empty when Status is SearchFailed.
type SearchOutcome struct {
	Query    string
	Status   SearchStatus
	Products []SearchResultItem
	Err      error
}

// Failed reports whether the search service answered with an error
func (o SearchOutcome) Failed() bool {
	return o.Status == SearchFailed
}

// Empty reports a successful search without hits
func (o SearchOutcome) Empty() bool {
	return o.Status == SearchOK && len(o.Products) == 0
}
