package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

// Store page tabs. Only tabs present in storeTabTemplates get their template
// overridden, unknown tabs (e.g. from extensions) fall through untouched.
const (
	tabProducts = "products"
	tabToc      = "toc"
	tabReviews  = "store_review"
)

var storeTabTemplates = map[string]string{
	tabProducts: "store",
	tabToc:      "store-toc",
}

const templatesExt = ".html"

const (
	templateStore     = "store"
	templateStoreToc  = "store-toc"
	templateStoreList = "store-list"
	templateProduct   = "product"
)

type templateSet struct {
	templates map[string]*pageTemplate
}

// pageTemplate is parsed template content: literal HTML interleaved with
// block placeholders of the form <!-- block:storeblocks/store-name {"isLink":true} -->.
type pageTemplate struct {
	Slug     string
	segments []templateSegment
}

type templateSegment struct {
	literal string
	blockID string
	attrs   map[string]any
}

// initTemplates loads the bundled template content files. A missing file
// just makes that template unavailable, the selector falls back to the
// host default then.
func (a *storeBlocks) initTemplates() error {
	a.templates = &templateSet{templates: map[string]*pageTemplate{}}
	for _, slug := range []string{templateStore, templateStoreToc, templateStoreList, templateProduct} {
		content, err := os.ReadFile(filepath.Join(a.cfg.Templates.Dir, slug+templatesExt))
		if err != nil {
			continue
		}
		a.templates.templates[slug] = parsePageTemplate(slug, string(content))
	}
	return nil
}

const blockCommentOpen = "<!-- block:"
const blockCommentClose = "-->"

func parsePageTemplate(slug, content string) *pageTemplate {
	tpl := &pageTemplate{Slug: slug}
	for content != "" {
		open := strings.Index(content, blockCommentOpen)
		if open < 0 {
			tpl.segments = append(tpl.segments, templateSegment{literal: content})
			break
		}
		if open > 0 {
			tpl.segments = append(tpl.segments, templateSegment{literal: content[:open]})
		}
		content = content[open+len(blockCommentOpen):]
		end := strings.Index(content, blockCommentClose)
		if end < 0 {
			break
		}
		placeholder := strings.TrimSpace(content[:end])
		content = content[end+len(blockCommentClose):]
		blockID, rawAttrs, _ := strings.Cut(placeholder, " ")
		segment := templateSegment{blockID: blockID}
		if rawAttrs = strings.TrimSpace(rawAttrs); rawAttrs != "" {
			_ = json.Unmarshal([]byte(rawAttrs), &segment.attrs)
		}
		tpl.segments = append(tpl.segments, segment)
	}
	return tpl
}

// currentStoreTab derives the active store tab from the query values.
func (rc *requestContext) currentStoreTab() string {
	if rc.tocTab {
		return tabToc
	}
	if rc.reviewTab {
		return tabReviews
	}
	return tabProducts
}

// selectStoreTemplate decides whether this plugin overrides the page
// template for the current request. Template provider plugins are consulted
// first, in registration order. Exactly one decision per request, anything
// unresolved keeps the host default.
func (a *storeBlocks) selectStoreTemplate(rc *requestContext) (*pageTemplate, bool) {
	if !rc.isStorePage() {
		return nil, false
	}
	tab := rc.currentStoreTab()
	slug, mapped := storeTabTemplates[tab]
	if !mapped {
		return nil, false
	}
	for _, tp := range a.templateProviders {
		if content, ok := tp.TemplateForTab(tab); ok {
			return parsePageTemplate(slug, content), true
		}
	}
	tpl, ok := a.templates.templates[slug]
	if !ok {
		return nil, false
	}
	return tpl, true
}

func (a *storeBlocks) renderPageTemplate(hb *htmlbuilder.HtmlBuilder, tpl *pageTemplate, ctx *renderContext) {
	for _, segment := range tpl.segments {
		if segment.blockID != "" {
			a.renderBlock(hb, segment.blockID, segment.attrs, ctx)
			continue
		}
		hb.WriteUnescaped(segment.literal)
	}
}
