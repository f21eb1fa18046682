package domain

import "strings"

const (
	// CategoryAll is the sentinel category meaning "do not filter by
	// category" that the storefront sends for the default tab.
	CategoryAll = "all"

	DefaultPage  = 1
	DefaultLimit = 20
)

// FilterSpec is the canonical representation of the recognized listing
// query parameters. Nil price bounds mean the bound was not supplied;
// empty strings mean the field was not supplied.
type FilterSpec struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Location string
	Search   string
	SellerID string
	ViewerID string
	Page     int
	Limit    int
}

// Canonicalize returns a copy with defaults applied so that two specs
// describing the same query compare equal. Page and limit fall back to
// their defaults when absent or out of range, and the "all" category
// sentinel collapses to no category filter.
func (f FilterSpec) Canonicalize() FilterSpec {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if strings.EqualFold(f.Category, CategoryAll) {
		f.Category = ""
	}
	f.Location = strings.TrimSpace(f.Location)
	f.Search = strings.TrimSpace(f.Search)
	return f
}
