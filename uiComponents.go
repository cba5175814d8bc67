package main

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.storeblocks.app/app/pkgs/bufferpool"
	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

// Composite blocks. They assemble field blocks, run the listing query or
// render their own markup, always through the shared render context so
// vendor and listing data propagate downward only.

func (a *storeBlocks) renderStoreHeaderBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreHeaderAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store header")
		return
	}
	vctx := ctx.withVendor(v)
	hb.WriteElementOpen("header", "class", "store-header store-header-"+attrs.Layout)
	if attrs.ShowBanner && v.BannerURL != "" {
		a.renderStoreBannerBlock(hb, nil, vctx)
	}
	hb.WriteElementOpen("div", "class", "store-header-content")
	a.renderStoreAvatarBlock(hb, nil, vctx)
	hb.WriteElementOpen("div", "class", "store-header-info")
	a.renderStoreNameBlock(hb, map[string]any{"tagName": "h1", "isLink": false}, vctx)
	a.renderStoreRatingBlock(hb, nil, vctx)
	if attrs.ShowContactInfo {
		a.renderContactInfo(hb, v)
	}
	if attrs.ShowSocialLinks && len(v.SocialProfiles) > 0 {
		a.renderSocialLinks(hb, v)
	}
	if attrs.ShowStoreHours {
		a.renderStoreHoursBlock(hb, map[string]any{"layout": "compact"}, vctx)
	}
	hb.WriteElementClose("div")
	hb.WriteElementClose("div")
	hb.WriteElementClose("header")
}

func (a *storeBlocks) renderStoreSidebarBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreSidebarAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store sidebar")
		return
	}
	vctx := ctx.withVendor(v)
	hb.WriteElementOpen("aside", "class", "store-sidebar")
	if attrs.ShowContactInfo {
		hb.WriteElementOpen("section", "class", "store-sidebar-contact")
		hb.WriteElementOpen("h3")
		hb.WriteEscaped("Contact")
		hb.WriteElementClose("h3")
		a.renderContactInfo(hb, v)
		hb.WriteElementClose("section")
	}
	if attrs.ShowStoreHours && v.HoursEnabled {
		hb.WriteElementOpen("section", "class", "store-sidebar-hours")
		hb.WriteElementOpen("h3")
		hb.WriteEscaped("Store hours")
		hb.WriteElementClose("h3")
		a.renderStoreHoursBlock(hb, map[string]any{"layout": "full", "showCurrentStatus": false}, vctx)
		hb.WriteElementClose("section")
	}
	if attrs.ShowLocation && (v.Lat != 0 || v.Lng != 0) {
		hb.WriteElementOpen("section", "class", "store-sidebar-location")
		hb.WriteElementOpen("h3")
		hb.WriteEscaped("Location")
		hb.WriteElementClose("h3")
		a.renderStoreLocationBlock(hb, nil, vctx)
		hb.WriteElementClose("section")
	}
	hb.WriteElementClose("aside")
}

func (a *storeBlocks) renderContactInfo(hb *htmlbuilder.HtmlBuilder, v *vendorRecord) {
	hb.WriteElementOpen("div", "class", "store-contact")
	if v.Address != "" {
		hb.WriteElementOpen("address")
		hb.WriteEscaped(v.Address)
		hb.WriteElementClose("address")
	}
	if v.Phone != "" {
		hb.WriteElementOpen("a", "href", "tel:"+v.Phone)
		hb.WriteEscaped(v.Phone)
		hb.WriteElementClose("a")
	}
	if v.Email != "" {
		hb.WriteElementOpen("a", "href", "mailto:"+v.Email)
		hb.WriteEscaped(v.Email)
		hb.WriteElementClose("a")
	}
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderSocialLinks(hb *htmlbuilder.HtmlBuilder, v *vendorRecord) {
	hb.WriteElementOpen("ul", "class", "store-social")
	for _, network := range sortedKeys(v.SocialProfiles) {
		link := v.SocialProfiles[network]
		if link == "" {
			continue
		}
		hb.WriteElementOpen("li")
		hb.WriteElementOpen("a", "href", link, "rel", "noopener", "target", "_blank")
		hb.WriteEscaped(network)
		hb.WriteElementClose("a")
		hb.WriteElementClose("li")
	}
	hb.WriteElementClose("ul")
}

func (a *storeBlocks) renderStoreTabsBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store tabs")
		return
	}
	current := tabProducts
	if ctx.rc != nil {
		current = ctx.rc.currentStoreTab()
	}
	hb.WriteElementOpen("nav", "class", "store-tabs")
	hb.WriteElementOpen("ul")
	a.renderStoreTab(hb, "Products", v.StoreURL, tabProducts, current)
	if v.Terms != "" {
		a.renderStoreTab(hb, "Terms and Conditions", v.StoreURL+"?toc=1", tabToc, current)
	}
	a.renderStoreTab(hb, "Reviews", v.StoreURL+"?store_review=1", tabReviews, current)
	hb.WriteElementClose("ul")
	hb.WriteElementClose("nav")
}

func (a *storeBlocks) renderStoreTab(hb *htmlbuilder.HtmlBuilder, label, link, tab, current string) {
	if tab == current {
		hb.WriteElementOpen("li", "class", "active")
	} else {
		hb.WriteElementOpen("li")
	}
	hb.WriteElementOpen("a", "href", link)
	hb.WriteEscaped(label)
	hb.WriteElementClose("a")
	hb.WriteElementClose("li")
}

func (a *storeBlocks) renderStoreTermsBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || v.Terms == "" {
		a.renderEditorPlaceholder(hb, ctx, "Terms and Conditions")
		return
	}
	a.initMarkdown()
	buf := bufferpool.Get()
	defer bufferpool.Put(buf)
	if err := a.md.Convert([]byte(v.Terms), buf); err != nil {
		log.Println("Failed to render store terms:", err)
		return
	}
	hb.WriteElementOpen("div", "class", "store-terms")
	hb.WriteUnescaped(a.sanitizer.Sanitize(buf.String()))
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderSellerQueryLoopBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseQueryLoopAttributes(rawAttrs)
	if ctx.rc == nil {
		return
	}
	queryID := attrs.QueryID
	if queryID == "" {
		queryID = uuid.NewString()
	}
	result, err := a.runSellerListing(ctx.rc, attrs)
	if err != nil {
		log.Println("Failed to run seller listing:", err)
		return
	}
	lctx := ctx.withListing(result, queryID)
	hb.WriteElementOpen(
		"div", "class", "seller-query-loop layout-"+attrs.DisplayLayout,
		"data-query-id", queryID, "style", fmt.Sprintf("--columns:%d", attrs.Columns),
	)
	if len(result.Sellers) == 0 {
		hb.WriteElementOpen("p", "class", "seller-query-loop-empty")
		hb.WriteEscaped("No stores found.")
		hb.WriteElementClose("p")
	}
	for _, s := range result.Sellers {
		a.renderSellerCardBlock(hb, rawAttrs, lctx.withVendor(a.vendorRecordFromSeller(s)))
	}
	hb.WriteElementClose("div")
	a.renderSellerPaginationBlock(hb, rawAttrs, lctx)
}

func (a *storeBlocks) renderSellerCardBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseSellerCardAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Seller card")
		return
	}
	vctx := ctx.withVendor(v)
	if attrs.UseBannerAsBackground && v.BannerURL != "" {
		hb.WriteElementOpen(
			"article", "class", "seller-card seller-card-banner-bg",
			"style", fmt.Sprintf("background-image:linear-gradient(rgba(0,0,0,%.2f),rgba(0,0,0,%.2f)),url('%s')",
				attrs.BackgroundOverlay, attrs.BackgroundOverlay, cssURLValue(v.BannerURL)),
		)
	} else {
		hb.WriteElementOpen("article", "class", "seller-card")
	}
	if v.Featured {
		hb.WriteElementOpen("span", "class", "seller-card-featured")
		hb.WriteEscaped("Featured")
		hb.WriteElementClose("span")
	}
	a.renderStoreAvatarBlock(hb, nil, vctx)
	hb.WriteElementOpen("div", "class", "seller-card-body")
	a.renderStoreNameBlock(hb, map[string]any{"tagName": "h3"}, vctx)
	a.renderStoreRatingBlock(hb, nil, vctx)
	a.renderStoreAddressBlock(hb, nil, vctx)
	a.renderStoreStatusBlock(hb, nil, vctx)
	hb.WriteElementClose("div")
	hb.WriteElementOpen("a", "class", "seller-card-link", "href", v.StoreURL)
	hb.WriteEscaped("Visit store")
	hb.WriteElementClose("a")
	hb.WriteElementClose("article")
}

// cssURLValue percent-encodes the characters that could end a quoted css
// url() string early, so a stored URL stays inside the style value.
func cssURLValue(s string) string {
	return strings.NewReplacer("'", "%27", "\"", "%22", "\\", "%5C", ")", "%29").Replace(s)
}

// listingPageURL builds a listing URL for the given page, keeping the
// current search and sort parameters.
func (a *storeBlocks) listingPageURL(rc *requestContext, page int) string {
	values := url.Values{}
	if page > 1 {
		values.Set("paged", fmt.Sprintf("%d", page))
	}
	if rc.sellerSearch != "" {
		values.Set("seller_search", rc.sellerSearch)
	}
	if rc.sortKey != "" {
		values.Set("stores_orderby", rc.sortKey)
	}
	link := a.cfg.Marketplace.ListingPath
	if query := values.Encode(); query != "" {
		link += "?" + query
	}
	return link
}

func (a *storeBlocks) renderSellerPaginationBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parsePaginationAttributes(rawAttrs)
	if ctx.listing == nil || ctx.rc == nil || ctx.listing.TotalPages <= 1 {
		return
	}
	l := ctx.listing
	hb.WriteElementOpen("nav", "class", "seller-pagination", "aria-label", "Stores pagination", "data-query-id", ctx.queryID)
	if attrs.ShowLabel {
		hb.WriteElementOpen("span", "class", "seller-pagination-label")
		hb.WriteEscaped(fmt.Sprintf("Page %d of %d", l.CurrentPage, l.TotalPages))
		hb.WriteElementClose("span")
	}
	hb.WriteElementOpen("ul")
	if l.CurrentPage > 1 {
		hb.WriteElementOpen("li", "class", "prev")
		hb.WriteElementOpen("a", "href", a.listingPageURL(ctx.rc, l.CurrentPage-1), "rel", "prev")
		hb.WriteEscaped("Previous")
		hb.WriteElementClose("a")
		hb.WriteElementClose("li")
	}
	for _, page := range paginationWindow(l.CurrentPage, l.TotalPages, attrs.MidSize) {
		if page == 0 {
			hb.WriteElementOpen("li", "class", "gap")
			hb.WriteEscaped("…")
			hb.WriteElementClose("li")
			continue
		}
		if page == l.CurrentPage {
			hb.WriteElementOpen("li", "class", "current")
			hb.WriteElementOpen("span")
			hb.WriteEscaped(fmt.Sprintf("%d", page))
			hb.WriteElementClose("span")
		} else {
			hb.WriteElementOpen("li")
			hb.WriteElementOpen("a", "href", a.listingPageURL(ctx.rc, page))
			hb.WriteEscaped(fmt.Sprintf("%d", page))
			hb.WriteElementClose("a")
		}
		hb.WriteElementClose("li")
	}
	if l.CurrentPage < l.TotalPages {
		hb.WriteElementOpen("li", "class", "next")
		hb.WriteElementOpen("a", "href", a.listingPageURL(ctx.rc, l.CurrentPage+1), "rel", "next")
		hb.WriteEscaped("Next")
		hb.WriteElementClose("a")
		hb.WriteElementClose("li")
	}
	hb.WriteElementClose("ul")
	hb.WriteElementClose("nav")
}

// paginationWindow returns the page numbers to show: first, last and
// midSize pages around the current one, 0 marking a gap.
func paginationWindow(current, total, midSize int) []int {
	var pages []int
	last := 0
	for page := 1; page <= total; page++ {
		if page != 1 && page != total && (page < current-midSize || page > current+midSize) {
			continue
		}
		if last != 0 && page != last+1 {
			pages = append(pages, 0)
		}
		pages = append(pages, page)
		last = page
	}
	return pages
}

func (a *storeBlocks) renderSellerSearchBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseSellerSearchAttributes(rawAttrs)
	if ctx.rc == nil {
		return
	}
	hb.WriteElementOpen("form", "class", "seller-search", "method", "get", "action", a.cfg.Marketplace.ListingPath)
	if attrs.EnableSearch {
		hb.WriteElementOpen(
			"input", "type", "search", "name", "seller_search",
			"placeholder", attrs.SearchPlaceholder, "value", ctx.rc.sellerSearch,
		)
	}
	if attrs.EnableSortBy {
		hb.WriteElementOpen("label", "class", "seller-search-sort")
		hb.WriteEscaped(attrs.SortByLabel)
		hb.WriteElementOpen("select", "name", "stores_orderby")
		current := parseSellerSortKey(ctx.rc.sortKey)
		for _, key := range allowedSellerSortKeys {
			if key == current {
				hb.WriteElementOpen("option", "value", string(key), "selected", "")
			} else {
				hb.WriteElementOpen("option", "value", string(key))
			}
			hb.WriteEscaped(sellerSortLabel(key))
			hb.WriteElementClose("option")
		}
		hb.WriteElementClose("select")
		hb.WriteElementClose("label")
	}
	hb.WriteElementOpen("button", "type", "submit")
	hb.WriteEscaped(attrs.ButtonText)
	hb.WriteElementClose("button")
	if attrs.ShowStoreCount && ctx.listing != nil {
		hb.WriteElementOpen("span", "class", "seller-search-count")
		if ctx.listing.Total == 1 {
			hb.WriteEscaped("1 store")
		} else {
			hb.WriteEscaped(fmt.Sprintf("%d stores", ctx.listing.Total))
		}
		hb.WriteElementClose("span")
	}
	hb.WriteElementClose("form")
}

func sellerSortLabel(key sellerSortKey) string {
	switch key {
	case sortByMostRecent:
		return "Most recent"
	case sortByTotalOrders:
		return "Most orders"
	case sortByRandom:
		return "Random"
	case sortByRating:
		return "Top rated"
	case sortByFeatured:
		return "Featured"
	default:
		return "Name"
	}
}

func (a *storeBlocks) renderProductSellerInfoBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseProductSellerInfoAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, 0)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Product seller info")
		return
	}
	vctx := ctx.withVendor(v)
	hb.WriteElementOpen("div", "class", "product-seller-info")
	a.renderStoreAvatarBlock(hb, map[string]any{"width": "48px", "height": "48px"}, vctx)
	hb.WriteElementOpen("div", "class", "product-seller-details")
	hb.WriteElementOpen("span", "class", "product-seller-label")
	hb.WriteEscaped("Sold by")
	hb.WriteElementClose("span")
	a.renderStoreNameBlock(hb, map[string]any{"tagName": "span"}, vctx)
	if attrs.ShowRating {
		a.renderStoreRatingBlock(hb, nil, vctx)
	}
	if attrs.ShowStatus {
		a.renderStoreStatusBlock(hb, nil, vctx)
	}
	hb.WriteElementClose("div")
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderMoreFromSellerBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseMoreFromSellerAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, 0)
	if v == nil || ctx.rc == nil {
		a.renderEditorPlaceholder(hb, ctx, "More from this seller")
		return
	}
	products, err := a.market.productsBySeller(v.ID, attrs.Limit, a.resolveProductID(ctx.rc))
	if err != nil {
		log.Println("Failed to load seller products:", err)
		return
	}
	if len(products) == 0 {
		return
	}
	hb.WriteElementOpen("section", "class", "more-from-seller")
	hb.WriteElementOpen("h2")
	hb.WriteEscaped(attrs.Heading)
	hb.WriteElementClose("h2")
	hb.WriteElementOpen("ul")
	for _, p := range products {
		hb.WriteElementOpen("li")
		hb.WriteElementOpen("a", "href", a.productURL(p.ID))
		if p.ImageURL != "" {
			hb.WriteElementOpen("img", "src", p.ImageURL, "alt", p.Title, "loading", "lazy")
		}
		hb.WriteElementOpen("span", "class", "product-title")
		hb.WriteEscaped(p.Title)
		hb.WriteElementClose("span")
		hb.WriteElementOpen("span", "class", "product-price")
		hb.WriteEscaped(fmt.Sprintf("%.2f", p.Price))
		hb.WriteElementClose("span")
		hb.WriteElementClose("a")
		hb.WriteElementClose("li")
	}
	hb.WriteElementClose("ul")
	hb.WriteElementClose("section")
}

func (a *storeBlocks) productURL(id int) string {
	return fmt.Sprintf("%s/%d", a.cfg.Marketplace.ProductPathPrefix, id)
}

func (a *storeBlocks) renderBecomeVendorCTABlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseBecomeVendorCTAAttributes(rawAttrs)
	link := attrs.ButtonURL
	if link == "" {
		link = a.cfg.Marketplace.VendorRegistrationURL
	}
	hb.WriteElementOpen("div", "class", "become-vendor-cta")
	hb.WriteElementOpen("h2")
	hb.WriteEscaped(attrs.Heading)
	hb.WriteElementClose("h2")
	if attrs.Text != "" {
		hb.WriteElementOpen("p")
		hb.WriteEscaped(attrs.Text)
		hb.WriteElementClose("p")
	}
	hb.WriteElementOpen("a", "class", "button", "href", link)
	hb.WriteEscaped(attrs.ButtonText)
	hb.WriteElementClose("a")
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderContactFormBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseContactFormAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Contact form")
		return
	}
	hb.WriteElementOpen("form", "class", "store-contact-form", "method", "post", "action", v.StoreURL+"/contact")
	hb.WriteElementOpen("input", "type", "hidden", "name", "seller_id", "value", v.ID)
	hb.WriteElementOpen("label")
	hb.WriteEscaped("Your name")
	hb.WriteElementOpen("input", "type", "text", "name", "name", "required", "")
	hb.WriteElementClose("label")
	hb.WriteElementOpen("label")
	hb.WriteEscaped("Your email")
	hb.WriteElementOpen("input", "type", "email", "name", "email", "required", "")
	hb.WriteElementClose("label")
	hb.WriteElementOpen("label")
	hb.WriteEscaped("Message")
	hb.WriteElementOpen("textarea", "name", "message", "required", "")
	hb.WriteElementClose("textarea")
	hb.WriteElementClose("label")
	hb.WriteElementOpen("button", "type", "submit")
	hb.WriteEscaped(attrs.ButtonText)
	hb.WriteElementClose("button")
	hb.WriteElementClose("form")
}

func (a *storeBlocks) renderStoreLocationBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreLocationAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || (v.Lat == 0 && v.Lng == 0) {
		a.renderEditorPlaceholder(hb, ctx, "Store location")
		return
	}
	hb.WriteElementOpen(
		"div", "class", "store-location",
		"data-lat", fmt.Sprintf("%v", v.Lat), "data-lng", fmt.Sprintf("%v", v.Lng),
		"style", fmt.Sprintf("height:%dpx", attrs.Height),
	)
	hb.WriteElementOpen(
		"a", "href", fmt.Sprintf("https://www.openstreetmap.org/?mlat=%v&mlon=%v", v.Lat, v.Lng),
		"rel", "noopener", "target", "_blank",
	)
	if v.Address != "" {
		hb.WriteEscaped(v.Address)
	} else {
		hb.WriteEscaped("Show on map")
	}
	hb.WriteElementClose("a")
	hb.WriteElementClose("div")
}
