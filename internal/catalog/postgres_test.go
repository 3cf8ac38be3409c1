package catalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "name", "description", "price"}

// patternArg matches the pq.Array argument by its text form.
type patternArg struct{ contains []string }

func (a patternArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, c := range a.contains {
		if !strings.Contains(s, c) {
			return false
		}
	}
	return true
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func ceiling(v int64) *int64 { return &v }

func TestStore_Search_WithCeiling(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM products`) + `.*` +
		regexp.QuoteMeta(`ILIKE ANY($1)`) + `.*` +
		regexp.QuoteMeta(`AND price <= $2 ORDER BY price ASC, id ASC LIMIT $3`)).
		WithArgs(patternArg{contains: []string{"%кроссовки%"}}, int64(8000), 5).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Кроссовки Runner", "для бега", 7500.0))

	got, err := store.Search(context.Background(), Filter{Terms: []string{"кроссовки"}, MaxPrice: ceiling(8000)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Product{ID: 1, Name: "Кроссовки Runner", Description: "для бега", Price: 7500}, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Search_WithoutCeiling(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`OR description ILIKE ANY($1)) ORDER BY price ASC, id ASC LIMIT $2`)).
		WithArgs(patternArg{contains: []string{"%running%", "%shoes%"}}, 3).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "Running shoes", "", 100.0).
			AddRow(3, "Trail shoes", "", 200.0))

	got, err := store.Search(context.Background(), Filter{Terms: []string{"Running", "shoes"}, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Search_EnforcesContract(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM products`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "a", "", 900.0).
			AddRow(2, "b", "", 300.0).
			AddRow(3, "c", "", 1500.0).
			AddRow(4, "d", "", 300.0).
			AddRow(5, "e", "", 100.0))

	got, err := store.Search(context.Background(), Filter{Terms: []string{"x"}, Limit: 3, MaxPrice: ceiling(1000)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, p := range got {
		assert.LessOrEqual(t, p.Price, 1000.0)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].Price, p.Price)
		}
	}
	assert.Equal(t, []int64{5, 2, 4}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestStore_Search_EmptyTermsSkipsQuery(t *testing.T) {
	store, mock := newMockStore(t)

	got, err := store.Search(context.Background(), Filter{Terms: []string{"  "}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Search_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM products`).WillReturnError(errors.New("connection refused"))

	_, err := store.Search(context.Background(), Filter{Terms: []string{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search products")
}

func TestLikePatterns_EscapesWildcards(t *testing.T) {
	assert.Equal(t, []string{`%50\%%`, `%a\_b%`}, likePatterns([]string{"50%", "A_b", ""}))
}
