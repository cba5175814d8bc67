package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

// requestContext is an immutable snapshot of everything the blocks may need
// from the incoming request. It is built once per request and passed down
// explicitly, there are no ambient globals to consult later.
type requestContext struct {
	// Query values
	storeSlug    string // "store" query value (vendor slug)
	authorParam  int    // numeric "author" query value
	productParam int    // "product_id" query value
	page         int    // "paged" query value
	sortKey      string // "stores_orderby" query value
	sellerSearch string // "seller_search" query value
	tocTab       bool   // "toc" query value
	reviewTab    bool   // "store_review" query value
	// Routing results
	routedStoreSlug string   // store page route match
	routedListing   bool     // listing page route match
	currentProduct  *product // product page route match, already loaded
}

func (a *storeBlocks) newRequestContext(r *http.Request) *requestContext {
	rc := &requestContext{
		storeSlug:    r.URL.Query().Get("store"),
		authorParam:  cast.ToInt(r.URL.Query().Get("author")),
		productParam: cast.ToInt(r.URL.Query().Get("product_id")),
		page:         cast.ToInt(r.URL.Query().Get("paged")),
		sortKey:      r.URL.Query().Get("stores_orderby"),
		sellerSearch: r.URL.Query().Get("seller_search"),
		tocTab:       cast.ToBool(r.URL.Query().Get("toc")),
		reviewTab:    cast.ToBool(r.URL.Query().Get("store_review")),
	}
	if r.URL.Path == a.cfg.Marketplace.ListingPath {
		rc.routedListing = true
	}
	if slug := chi.URLParam(r, "storeslug"); slug != "" {
		rc.routedStoreSlug = slug
	}
	if pid := cast.ToInt(chi.URLParam(r, "productid")); pid > 0 {
		if p, err := a.market.productByID(pid); err == nil {
			rc.currentProduct = p
		}
	}
	return rc
}

// resolveVendorID finds the vendor for the current request, first match wins:
// routed or queried store slug, numeric author parameter, then the author of
// the current product. Returns 0 when nothing resolves to a recognized seller.
func (a *storeBlocks) resolveVendorID(rc *requestContext) int {
	for _, slug := range []string{rc.routedStoreSlug, rc.storeSlug} {
		if slug == "" {
			continue
		}
		if id, ok := a.market.sellerIDBySlug(slug); ok && a.market.isSeller(id) {
			return id
		}
	}
	if rc.authorParam > 0 && a.market.isSeller(rc.authorParam) {
		return rc.authorParam
	}
	if rc.currentProduct != nil && a.market.isSeller(rc.currentProduct.SellerID) {
		return rc.currentProduct.SellerID
	}
	return 0
}

func (a *storeBlocks) resolveProductID(rc *requestContext) int {
	if rc.currentProduct != nil {
		return rc.currentProduct.ID
	}
	if rc.productParam > 0 {
		return rc.productParam
	}
	return 0
}

func (rc *requestContext) isProductPage() bool {
	return rc.currentProduct != nil
}

// isStorePage reports whether the request targets a single store page.
// A product page never counts as a store page, even when a store slug is
// present, so product pages keep their own template.
func (rc *requestContext) isStorePage() bool {
	if rc.isProductPage() {
		return false
	}
	return rc.routedStoreSlug != "" || rc.storeSlug != ""
}

func (rc *requestContext) isStoreListPage() bool {
	return !rc.isProductPage() && rc.routedListing
}
