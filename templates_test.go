package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

func TestParsePageTemplate(t *testing.T) {
	tpl := parsePageTemplate("test", `<div class="wrap">
<!-- block:storeblocks/store-name {"tagName": "h1"} -->
<p>Between</p>
<!-- block:storeblocks/store-rating -->
</div>`)

	var blockIDs []string
	for _, segment := range tpl.segments {
		if segment.blockID != "" {
			blockIDs = append(blockIDs, segment.blockID)
		}
	}
	assert.Equal(t, []string{"storeblocks/store-name", "storeblocks/store-rating"}, blockIDs)

	// Attributes parsed from the placeholder
	require.NotNil(t, tpl.segments[1].attrs)
	assert.Equal(t, "h1", tpl.segments[1].attrs["tagName"])

	// Literals preserved
	assert.Contains(t, tpl.segments[0].literal, `<div class="wrap">`)
}

func TestSelectStoreTemplate(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().addSeller(testSeller())

	storeReq := func(target string) *requestContext {
		return app.newRequestContext(httptest.NewRequest("GET", target, nil))
	}

	t.Run("products tab gets the store template", func(t *testing.T) {
		tpl, ok := app.selectStoreTemplate(storeReq("/?store=acme"))
		require.True(t, ok)
		assert.Equal(t, templateStore, tpl.Slug)
	})

	t.Run("toc tab gets the toc template", func(t *testing.T) {
		tpl, ok := app.selectStoreTemplate(storeReq("/?store=acme&toc=1"))
		require.True(t, ok)
		assert.Equal(t, templateStoreToc, tpl.Slug)
	})

	t.Run("review tab never overrides", func(t *testing.T) {
		_, ok := app.selectStoreTemplate(storeReq("/?store=acme&store_review=1"))
		assert.False(t, ok)
	})

	t.Run("no override outside store pages", func(t *testing.T) {
		_, ok := app.selectStoreTemplate(storeReq("/stores"))
		assert.False(t, ok)
	})

	t.Run("template provider plugins win", func(t *testing.T) {
		app.templateProviders = append(app.templateProviders, &fakeTemplateProvider{
			tab:     tabProducts,
			content: `<!-- block:storeblocks/store-name -->`,
		})
		defer func() { app.templateProviders = nil }()
		tpl, ok := app.selectStoreTemplate(storeReq("/?store=acme"))
		require.True(t, ok)
		require.Len(t, tpl.segments, 1)
		assert.Equal(t, "storeblocks/store-name", tpl.segments[0].blockID)
	})
}

type fakeTemplateProvider struct {
	tab     string
	content string
}

func (p *fakeTemplateProvider) TemplateForTab(tab string) (string, bool) {
	if tab == p.tab {
		return p.content, true
	}
	return "", false
}

func TestRenderPageTemplate(t *testing.T) {
	app := newTestApp(t)
	app.fakeMarket().addSeller(testSeller())

	tpl := parsePageTemplate("test", `<section><!-- block:storeblocks/store-name {"isLink": false} --></section>`)
	buf := &strings.Builder{}
	v, err := app.vendorRecord(42)
	require.NoError(t, err)
	app.renderPageTemplate(htmlbuilder.NewHtmlBuilder(buf), tpl, &renderContext{vendor: v})

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, "Acme & Co", doc.Find("section h2.store-name").Text())

	// Unregistered placeholders are silently skipped
	tpl = parsePageTemplate("test", `<p>a</p><!-- block:storeblocks/nope --><p>b</p>`)
	buf.Reset()
	app.renderPageTemplate(htmlbuilder.NewHtmlBuilder(buf), tpl, &renderContext{})
	assert.Equal(t, "<p>a</p><p>b</p>", buf.String())
}
