package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVendorID(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().
		addSeller(testSeller()).
		addSeller(&seller{ID: 7, Slug: "other", StoreName: "Other Store"}).
		addProduct(&product{ID: 5, SellerID: 42, Title: "Widget"})

	t.Run("store slug wins", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?store=acme&author=7", nil)
		rc := app.newRequestContext(r)
		assert.Equal(t, 42, app.resolveVendorID(rc))
	})

	t.Run("unknown slug falls through to author", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?store=nope&author=7", nil)
		rc := app.newRequestContext(r)
		assert.Equal(t, 7, app.resolveVendorID(rc))
	})

	t.Run("author beats product author", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/product/5?author=7", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("productid", "5")
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		rc := app.newRequestContext(r)
		require.NotNil(t, rc.currentProduct)
		assert.Equal(t, 7, app.resolveVendorID(rc))
	})

	t.Run("product author as last fallback", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/product/5", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("productid", "5")
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		rc := app.newRequestContext(r)
		assert.Equal(t, 42, app.resolveVendorID(rc))
	})

	t.Run("nothing resolves", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?author=999", nil)
		rc := app.newRequestContext(r)
		assert.Equal(t, 0, app.resolveVendorID(rc))
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?store=acme", nil)
		rc := app.newRequestContext(r)
		first := app.resolveVendorID(rc)
		second := app.resolveVendorID(rc)
		assert.Equal(t, first, second)
	})
}

func TestPageKindDetection(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().
		addSeller(testSeller()).
		addProduct(&product{ID: 5, SellerID: 42, Title: "Widget"})

	t.Run("product page beats store slug", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/product/5?store=acme", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("productid", "5")
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		rc := app.newRequestContext(r)
		assert.True(t, rc.isProductPage())
		assert.False(t, rc.isStorePage())
	})

	t.Run("routed store page", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/store/acme", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("storeslug", "acme")
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		rc := app.newRequestContext(r)
		assert.True(t, rc.isStorePage())
		assert.False(t, rc.isStoreListPage())
	})

	t.Run("listing page", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/stores?paged=2", nil)
		rc := app.newRequestContext(r)
		assert.True(t, rc.isStoreListPage())
		assert.Equal(t, 2, rc.page)
	})
}

func TestCurrentStoreTab(t *testing.T) {
	app := newTestApp(t)

	rc := app.newRequestContext(httptest.NewRequest("GET", "/store/acme", nil))
	assert.Equal(t, tabProducts, rc.currentStoreTab())

	rc = app.newRequestContext(httptest.NewRequest("GET", "/store/acme?toc=1", nil))
	assert.Equal(t, tabToc, rc.currentStoreTab())

	rc = app.newRequestContext(httptest.NewRequest("GET", "/store/acme?store_review=1", nil))
	assert.Equal(t, tabReviews, rc.currentStoreTab())

	// toc wins over store_review
	rc = app.newRequestContext(httptest.NewRequest("GET", "/store/acme?toc=1&store_review=1", nil))
	assert.Equal(t, tabToc, rc.currentStoreTab())
}
