package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.storeblocks.app/app/pkgs/plugintypes"
)

func TestParseSellerSortKey(t *testing.T) {
	for _, key := range allowedSellerSortKeys {
		assert.Equal(t, key, parseSellerSortKey(string(key)))
	}
	// Anything unknown falls back to name
	assert.Equal(t, sortByName, parseSellerSortKey(""))
	assert.Equal(t, sortByName, parseSellerSortKey("price"))
	assert.Equal(t, sortByName, parseSellerSortKey("; drop table sellers"))
}

func TestOrderClause(t *testing.T) {
	clause := func(key sellerSortKey) string {
		return (&sellerListingQuery{SortKey: key}).orderClause()
	}
	assert.Equal(t, "store_name collate nocase asc", clause(sortByName))
	assert.Equal(t, "id desc", clause(sortByMostRecent))
	assert.Contains(t, clause(sortByTotalOrders), "seller_orders")
	assert.Equal(t, "rating desc, rating_count desc", clause(sortByRating))
	assert.Contains(t, clause(sortByFeatured), "featured desc")

	// Random without a resolved column stays deterministic
	assert.Equal(t, "id", clause(sortByRandom))
	q := &sellerListingQuery{SortKey: sortByRandom, randomColumn: "slug, id"}
	assert.Equal(t, "slug, id", q.orderClause())
}

func TestResolveRandomOrderColumn(t *testing.T) {
	app := newTestApp(t)

	first := app.resolveRandomOrderColumn()
	assert.Contains(t, randomOrderColumns, first)

	// The choice is cached, repeated calls within the window agree
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, app.resolveRandomOrderColumn())
	}
}

func TestRunSellerListing(t *testing.T) {
	app := listingTestApp(t)

	t.Run("paginates", func(t *testing.T) {
		rc := app.newRequestContext(httptest.NewRequest("GET", "/stores?paged=2", nil))
		result, err := app.runSellerListing(rc, parseQueryLoopAttributes(map[string]any{"perPage": 2}))
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.TotalPages)
		assert.Equal(t, 2, result.CurrentPage)
		require.Len(t, result.Sellers, 1)
		assert.Equal(t, "Gamma Wares", result.Sellers[0].StoreName)
	})

	t.Run("invalid page falls back to one", func(t *testing.T) {
		rc := app.newRequestContext(httptest.NewRequest("GET", "/stores?paged=-3", nil))
		result, err := app.runSellerListing(rc, parseQueryLoopAttributes(nil))
		require.NoError(t, err)
		assert.Equal(t, 1, result.CurrentPage)
	})

	t.Run("per page falls back to config", func(t *testing.T) {
		rc := app.newRequestContext(httptest.NewRequest("GET", "/stores", nil))
		result, err := app.runSellerListing(rc, &queryLoopAttributes{OrderBy: sortByName})
		require.NoError(t, err)
		assert.Equal(t, app.cfg.Marketplace.PerPage, result.PerPage)
	})

	t.Run("query modifier plugins apply", func(t *testing.T) {
		app.queryModifiers = append(app.queryModifiers, &featuredOnlyModifier{})
		defer func() { app.queryModifiers = nil }()
		rc := app.newRequestContext(httptest.NewRequest("GET", "/stores", nil))
		result, err := app.runSellerListing(rc, parseQueryLoopAttributes(nil))
		require.NoError(t, err)
		require.Len(t, result.Sellers, 1)
		assert.Equal(t, "Beta Crafts", result.Sellers[0].StoreName)
	})
}

type featuredOnlyModifier struct{}

func (m *featuredOnlyModifier) ModifySellerQuery(q plugintypes.SellerQuery) {
	q.SetFeaturedOnly(true)
}
