package main

import (
	"fmt"
	"net/http"

	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

func (a *storeBlocks) serveSellerListing(w http.ResponseWriter, r *http.Request) {
	rc := a.newRequestContext(r)
	a.render(w, r, a.renderSellerListingPage, &renderData{
		Title:     "Stores",
		Canonical: a.absoluteURL(a.cfg.Marketplace.ListingPath),
		rc:        rc,
	})
}

func (a *storeBlocks) renderSellerListingPage(hb *htmlbuilder.HtmlBuilder, rd *renderData) {
	a.renderPageShell(hb, rd, func() {
		if tpl, ok := a.templates.templates[templateStoreList]; ok {
			a.renderPageTemplate(hb, tpl, rd.ctx)
			return
		}
		a.renderBlock(hb, blockNamespace+"seller-search", nil, rd.ctx)
		a.renderBlock(hb, blockNamespace+"seller-query-loop", nil, rd.ctx)
		a.renderBlock(hb, blockNamespace+"become-vendor-cta", nil, rd.ctx)
	})
}

func (a *storeBlocks) serveStorePage(w http.ResponseWriter, r *http.Request) {
	rc := a.newRequestContext(r)
	vendorID := a.resolveVendorID(rc)
	if vendorID == 0 {
		a.serve404(w, r)
		return
	}
	v, err := a.vendorRecord(vendorID)
	if err != nil {
		a.serveError(w, r, "Failed to load store", http.StatusInternalServerError)
		return
	}
	a.render(w, r, a.renderStorePage, &renderData{
		Title:     v.StoreName,
		Canonical: v.StoreURL,
		rc:        rc,
		ctx:       &renderContext{rc: rc, vendor: v},
	})
}

func (a *storeBlocks) renderStorePage(hb *htmlbuilder.HtmlBuilder, rd *renderData) {
	a.renderPageShell(hb, rd, func() {
		if tpl, ok := a.selectStoreTemplate(rd.rc); ok {
			a.renderPageTemplate(hb, tpl, rd.ctx)
			return
		}
		a.renderBlock(hb, blockNamespace+"store-header", nil, rd.ctx)
		a.renderBlock(hb, blockNamespace+"store-tabs", nil, rd.ctx)
		switch rd.rc.currentStoreTab() {
		case tabToc:
			a.renderBlock(hb, blockNamespace+"store-terms", nil, rd.ctx)
		case tabReviews:
			a.renderStoreReviews(hb, rd.ctx)
		default:
			a.renderStoreProducts(hb, rd.ctx)
		}
		a.renderBlock(hb, blockNamespace+"store-sidebar", nil, rd.ctx)
	})
}

// renderStoreProducts renders the product grid of the default products tab.
func (a *storeBlocks) renderStoreProducts(hb *htmlbuilder.HtmlBuilder, ctx *renderContext) {
	if ctx.vendor == nil {
		return
	}
	products, err := a.market.productsBySeller(ctx.vendor.ID, a.cfg.Marketplace.PerPage, 0)
	if err != nil || len(products) == 0 {
		return
	}
	hb.WriteElementOpen("div", "class", "store-products")
	for _, p := range products {
		hb.WriteElementOpen("article", "class", "store-product")
		hb.WriteElementOpen("a", "href", a.productURL(p.ID))
		if p.ImageURL != "" {
			hb.WriteElementOpen("img", "src", p.ImageURL, "alt", p.Title, "loading", "lazy")
		}
		hb.WriteElementOpen("h3")
		hb.WriteEscaped(p.Title)
		hb.WriteElementClose("h3")
		hb.WriteElementOpen("span", "class", "product-price")
		hb.WriteEscaped(fmt.Sprintf("%.2f", p.Price))
		hb.WriteElementClose("span")
		hb.WriteElementClose("a")
		hb.WriteElementClose("article")
	}
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderStoreReviews(hb *htmlbuilder.HtmlBuilder, ctx *renderContext) {
	hb.WriteElementOpen("section", "class", "store-reviews")
	a.renderBlock(hb, blockNamespace+"store-rating", nil, ctx)
	hb.WriteElementClose("section")
}

func (a *storeBlocks) serveProductPage(w http.ResponseWriter, r *http.Request) {
	rc := a.newRequestContext(r)
	if rc.currentProduct == nil {
		a.serve404(w, r)
		return
	}
	a.render(w, r, a.renderProductPage, &renderData{
		Title:     rc.currentProduct.Title,
		Canonical: a.absoluteURL(a.productURL(rc.currentProduct.ID)),
		rc:        rc,
	})
}

func (a *storeBlocks) renderProductPage(hb *htmlbuilder.HtmlBuilder, rd *renderData) {
	a.renderPageShell(hb, rd, func() {
		if tpl, ok := a.templates.templates[templateProduct]; ok {
			a.renderPageTemplate(hb, tpl, rd.ctx)
			return
		}
		p := rd.rc.currentProduct
		hb.WriteElementOpen("article", "class", "product")
		if p.ImageURL != "" {
			hb.WriteElementOpen("img", "src", p.ImageURL, "alt", p.Title)
		}
		hb.WriteElementOpen("h1")
		hb.WriteEscaped(p.Title)
		hb.WriteElementClose("h1")
		hb.WriteElementOpen("span", "class", "product-price")
		hb.WriteEscaped(fmt.Sprintf("%.2f", p.Price))
		hb.WriteElementClose("span")
		hb.WriteElementClose("article")
		a.renderBlock(hb, blockNamespace+"product-seller-info", nil, rd.ctx)
		a.renderBlock(hb, blockNamespace+"more-from-seller", nil, rd.ctx)
	})
}

func (a *storeBlocks) renderPageShell(hb *htmlbuilder.HtmlBuilder, rd *renderData, body func()) {
	hb.WriteUnescaped("<!doctype html>")
	hb.WriteElementOpen("html", "lang", "en")
	hb.WriteElementOpen("head")
	hb.WriteElementOpen("meta", "charset", "utf-8")
	hb.WriteElementOpen("meta", "name", "viewport", "content", "width=device-width,initial-scale=1")
	hb.WriteElementOpen("title")
	hb.WriteEscaped(rd.Title)
	hb.WriteElementClose("title")
	if rd.Canonical != "" {
		hb.WriteElementOpen("link", "rel", "canonical", "href", rd.Canonical)
	}
	hb.WriteElementClose("head")
	hb.WriteElementOpen("body")
	hb.WriteElementOpen("main")
	body()
	hb.WriteElementClose("main")
	hb.WriteElementClose("body")
	hb.WriteElementClose("html")
}
