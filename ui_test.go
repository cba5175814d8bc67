package main

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderStoreNameBlock(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().addSeller(testSeller())
	v, err := app.vendorRecord(42)
	require.NoError(t, err)
	ctx := &renderContext{vendor: v}

	t.Run("linked heading with escaped name", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", nil, ctx)
		assert.Contains(t, html, "Acme &amp; Co")
		doc := parseHTML(t, html)
		link := doc.Find("h2.store-name a")
		assert.Equal(t, "Acme & Co", link.Text())
		href, _ := link.Attr("href")
		assert.Equal(t, v.StoreURL, href)
	})

	t.Run("custom tag without link", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", map[string]any{
			"tagName": "h1", "isLink": false,
		}, ctx)
		doc := parseHTML(t, html)
		assert.Equal(t, "Acme & Co", doc.Find("h1.store-name").Text())
		assert.Zero(t, doc.Find("a").Length())
	})

	t.Run("disallowed tag falls back", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", map[string]any{
			"tagName": "script",
		}, ctx)
		assert.Contains(t, html, "<h2")
		assert.NotContains(t, html, "<script")
	})

	t.Run("context vendor wins over vendor attribute", func(t *testing.T) {
		app.fakeMarket().addSeller(&seller{ID: 7, Slug: "other", StoreName: "Other Store"})
		html := renderBlockToString(app, "storeblocks/store-name", map[string]any{
			"vendorId": 7,
		}, ctx)
		assert.Contains(t, html, "Acme &amp; Co")
		assert.NotContains(t, html, "Other Store")
	})

	t.Run("explicit vendor attribute", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", map[string]any{
			"vendorId": 42,
		}, &renderContext{})
		assert.Contains(t, html, "Acme &amp; Co")
	})

	t.Run("unknown vendor renders nothing", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", map[string]any{
			"vendorId": 999,
		}, &renderContext{})
		assert.Empty(t, html)
	})

	t.Run("editor placeholder mode", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-name", nil, &renderContext{editorPlaceholder: true})
		doc := parseHTML(t, html)
		assert.Equal(t, "Store name", doc.Find("div.block-placeholder").Text())
	})
}

func TestRenderStoreRatingBlock(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().addSeller(testSeller())

	t.Run("stars and count", func(t *testing.T) {
		v, _ := app.vendorRecord(42)
		html := renderBlockToString(app, "storeblocks/store-rating", nil, &renderContext{vendor: v})
		doc := parseHTML(t, html)
		assert.Equal(t, "(12)", doc.Find(".store-rating-count").Text())
		assert.NotZero(t, doc.Find(".store-rating-stars").Length())
	})

	t.Run("count can be hidden", func(t *testing.T) {
		v, _ := app.vendorRecord(42)
		html := renderBlockToString(app, "storeblocks/store-rating", map[string]any{
			"showCount": false,
		}, &renderContext{vendor: v})
		doc := parseHTML(t, html)
		assert.Zero(t, doc.Find(".store-rating-count").Length())
	})

	t.Run("no reviews yet", func(t *testing.T) {
		s := testSeller()
		s.ID = 50
		s.Slug = "new"
		s.Rating = 0
		s.RatingCount = 0
		app.fakeMarket().addSeller(s)
		v, _ := app.vendorRecord(50)
		html := renderBlockToString(app, "storeblocks/store-rating", nil, &renderContext{vendor: v})
		assert.Contains(t, html, "No reviews yet")
	})

	t.Run("unknown vendor renders nothing", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-rating", map[string]any{
			"vendorId": 999,
		}, &renderContext{})
		assert.Empty(t, html)
	})
}

func TestRenderVendorFieldBlocks(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().addSeller(testSeller())
	v, err := app.vendorRecord(42)
	require.NoError(t, err)
	ctx := &renderContext{vendor: v}

	t.Run("phone", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-phone", nil, ctx)
		doc := parseHTML(t, html)
		href, _ := doc.Find(".store-phone a").Attr("href")
		assert.Equal(t, "tel:+1234567890", href)
	})

	t.Run("address", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-address", nil, ctx)
		doc := parseHTML(t, html)
		assert.Equal(t, "1 Main Street", doc.Find("address.store-address").Text())
	})

	t.Run("avatar with size attributes", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-avatar", map[string]any{
			"width": "100px", "height": "100px",
		}, ctx)
		doc := parseHTML(t, html)
		img := doc.Find(".store-avatar img")
		src, _ := img.Attr("src")
		assert.Equal(t, v.AvatarURL, src)
		style, _ := img.Attr("style")
		assert.Contains(t, style, "width:100px")
	})

	t.Run("status uses class for open state", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-status", nil, ctx)
		// Hours disabled counts as always open
		assert.Contains(t, html, "store-status-open")
	})

	t.Run("banner missing renders nothing", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-banner", nil, ctx)
		assert.Empty(t, html)
	})
}

func TestRenderStoreHoursBlock(t *testing.T) {
	app := newTestApp(t)
	s := testSeller()
	s.HoursEnabled = true
	s.StoreHours = map[string]*storeDayHours{
		"monday": {Status: "open", OpeningTime: "09:00", ClosingTime: "17:00"},
	}
	app.fakeMarket().addSeller(s)
	v, err := app.vendorRecord(42)
	require.NoError(t, err)

	t.Run("full layout lists the week", func(t *testing.T) {
		html := renderBlockToString(app, "storeblocks/store-hours", map[string]any{
			"layout": "full", "showCurrentStatus": false,
		}, &renderContext{vendor: v})
		doc := parseHTML(t, html)
		assert.Equal(t, 7, doc.Find("li").Length())
		assert.Contains(t, html, "Monday: 09:00 - 17:00")
		assert.Contains(t, html, "Sunday: Closed")
	})

	t.Run("hours disabled renders nothing", func(t *testing.T) {
		plain := testSeller()
		plain.ID = 60
		plain.Slug = "plain"
		app.fakeMarket().addSeller(plain)
		pv, _ := app.vendorRecord(60)
		html := renderBlockToString(app, "storeblocks/store-hours", nil, &renderContext{vendor: pv})
		assert.Empty(t, html)
	})
}
