package main

import (
	"log"
	"net/http"

	"go.storeblocks.app/app/pkgs/bufferpool"
	"go.storeblocks.app/app/pkgs/contenttype"
	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

// renderContext carries data from ancestor blocks down the render tree.
// Propagation is strictly downward, with* methods copy instead of mutating,
// so a descendant can never change what its ancestors saw.
type renderContext struct {
	rc      *requestContext
	vendor  *vendorRecord
	listing *sellerListingResult
	queryID string
	// editorPlaceholder requests the editor-only placeholder output for
	// blocks that have one, instead of empty output
	editorPlaceholder bool
}

func (c *renderContext) withVendor(v *vendorRecord) *renderContext {
	copied := *c
	copied.vendor = v
	return &copied
}

func (c *renderContext) withListing(l *sellerListingResult, queryID string) *renderContext {
	copied := *c
	copied.listing = l
	copied.queryID = queryID
	return &copied
}

// effectiveVendor resolves the vendor a block should render: the inherited
// context vendor wins, then an explicit vendorId attribute, then detection
// from the request. Returns nil when nothing resolves to a recognized seller.
func (a *storeBlocks) effectiveVendor(ctx *renderContext, attributeVendorID int) *vendorRecord {
	if ctx.vendor != nil {
		return ctx.vendor
	}
	if attributeVendorID > 0 {
		if v, err := a.vendorRecord(attributeVendorID); err == nil {
			return v
		}
		return nil
	}
	if ctx.rc != nil {
		if id := a.resolveVendorID(ctx.rc); id > 0 {
			if v, err := a.vendorRecord(id); err == nil {
				return v
			}
		}
	}
	return nil
}

// renderBlock dispatches a single block. Unregistered blocks and blocks
// without a render callback produce nothing, and a panicking block is
// contained to its own output.
func (a *storeBlocks) renderBlock(hb *htmlbuilder.HtmlBuilder, id string, attrs map[string]any, ctx *renderContext) {
	b, ok := a.registry.registered[id]
	if !ok || b.render == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Println("Recovered render of block", id, ":", rec)
		}
	}()
	b.render(hb, attrs, ctx)
}

type renderData struct {
	Canonical string
	Title     string
	rc        *requestContext
	ctx       *renderContext
	Data      any
}

func (a *storeBlocks) render(w http.ResponseWriter, r *http.Request, f func(*htmlbuilder.HtmlBuilder, *renderData), data *renderData) {
	a.renderWithStatusCode(w, r, http.StatusOK, f, data)
}

func (a *storeBlocks) renderWithStatusCode(w http.ResponseWriter, r *http.Request, statusCode int, f func(*htmlbuilder.HtmlBuilder, *renderData), data *renderData) {
	if data.rc == nil {
		data.rc = a.newRequestContext(r)
	}
	if data.ctx == nil {
		data.ctx = &renderContext{rc: data.rc}
	}
	buf := bufferpool.Get()
	defer bufferpool.Put(buf)
	minWriter := a.min.Get().Writer(contenttype.HTML, buf)
	f(htmlbuilder.NewHtmlBuilder(minWriter), data)
	_ = minWriter.Close()
	w.Header().Set("Content-Type", contenttype.HTMLUTF8)
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}
