package catalog

import "context"

// DefaultLimit is the result cap used when a filter does not set one.
const DefaultLimit = 5

// Product is a catalog row. The catalog is owned elsewhere; this service only reads it.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
}

// Filter selects products whose name or description contains any of Terms
// (case-insensitive), optionally capped by MaxPrice.
type Filter struct {
	Terms    []string
	Limit    int
	MaxPrice *int64
}

// Searcher returns matching products ordered by ascending price.
// Implementations must be safe for concurrent use.
type Searcher interface {
	Search(ctx context.Context, f Filter) ([]Product, error)
}
