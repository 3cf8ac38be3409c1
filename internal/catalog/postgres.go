package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Store searches the products relation.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const searchBase = `SELECT id, name, COALESCE(description, ''), price FROM products ` +
	`WHERE (name ILIKE ANY($1) OR description ILIKE ANY($1))`

func (s *Store) Search(ctx context.Context, f Filter) ([]Product, error) {
	patterns := likePatterns(f.Terms)
	if len(patterns) == 0 {
		return nil, nil
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := searchBase
	args := []interface{}{pq.Array(patterns)}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY price ASC, id ASC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return enforce(out, f.MaxPrice, limit), nil
}

// enforce applies the ceiling, the stable ascending price order and the limit to fetched rows.
func enforce(ps []Product, maxPrice *int64, limit int) []Product {
	out := ps[:0]
	for _, p := range ps {
		if maxPrice != nil && p.Price > float64(*maxPrice) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePatterns(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, "%"+likeEscaper.Replace(strings.ToLower(t))+"%")
	}
	return out
}
