package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/carlmjohnson/requests"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cast"
	"go.storeblocks.app/app/pkgs/bufferpool"
	"go.storeblocks.app/app/pkgs/contenttype"
	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

const previewGenerationHeader = "X-Preview-Generation"

func (a *storeBlocks) apiRouter(r chi.Router) {
	r.Use(middleware.NoCache, noIndexHeader)
	r.Get("/blocks", a.serveBlockList)
	r.Get("/preview/vendor/{vendorid:[0-9]+}", a.serveVendorPreview)
	r.Get("/preview/block", a.serveBlockPreview)
}

func (a *storeBlocks) serveBlockList(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contenttype.JSONUTF8)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"blocks": a.registry.listRegistered(),
	})
}

// vendorPreview is the vendor summary the block editor shows while
// configuring a block, not the full record.
type vendorPreview struct {
	ID          int     `json:"id"`
	StoreName   string  `json:"storeName"`
	StoreURL    string  `json:"storeUrl"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	Featured    bool    `json:"featured"`
}

func (a *storeBlocks) serveVendorPreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contenttype.JSONUTF8)
	id := cast.ToInt(chi.URLParam(r, "vendorid"))
	v, err := a.vendorRecord(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "vendor not found"})
		return
	}
	_ = json.NewEncoder(w).Encode(&vendorPreview{
		ID:          v.ID,
		StoreName:   v.StoreName,
		StoreURL:    v.StoreURL,
		AvatarURL:   v.AvatarURL,
		Rating:      v.Rating,
		RatingCount: v.RatingCount,
		Featured:    v.Featured,
	})
}

// serveBlockPreview renders a single block the way the editor shows it:
// placeholders instead of empty output. The generation tag from the request
// is echoed back, so the editor can discard stale responses.
func (a *storeBlocks) serveBlockPreview(w http.ResponseWriter, r *http.Request) {
	if generation := r.Header.Get(previewGenerationHeader); generation != "" {
		w.Header().Set(previewGenerationHeader, generation)
	}
	blockID := r.URL.Query().Get("block")
	if !a.registry.isRegistered(blockID) {
		a.serveError(w, r, "unknown block", http.StatusBadRequest)
		return
	}
	var attrs map[string]any
	if attrsParam := r.URL.Query().Get("attributes"); attrsParam != "" {
		if err := json.Unmarshal([]byte(attrsParam), &attrs); err != nil {
			a.serveError(w, r, "invalid attributes", http.StatusBadRequest)
			return
		}
	}
	if vid := cast.ToInt(r.URL.Query().Get("vendorId")); vid > 0 {
		if attrs == nil {
			attrs = map[string]any{}
		}
		attrs["vendorId"] = vid
	}
	ctx := &renderContext{
		rc:                a.newRequestContext(r),
		editorPlaceholder: true,
	}
	buf := bufferpool.Get()
	defer bufferpool.Put(buf)
	minWriter := a.min.Get().Writer(contenttype.HTML, buf)
	a.renderBlock(htmlbuilder.NewHtmlBuilder(minWriter), blockID, attrs, ctx)
	_ = minWriter.Close()
	w.Header().Set("Content-Type", contenttype.HTMLUTF8)
	_, _ = buf.WriteTo(w)
}

var errStalePreview = errors.New("stale preview response")

// previewClient fetches block previews for an editor session. Every fetch
// gets a new generation and cancels the previous in-flight request. A
// response that comes back after a newer fetch started is dropped.
type previewClient struct {
	baseURL    string
	httpClient *http.Client
	generation atomic.Int64
	cancelMu   sync.Mutex
	cancel     context.CancelFunc
}

func newPreviewClient(baseURL string, httpClient *http.Client) *previewClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &previewClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *previewClient) fetchBlockPreview(ctx context.Context, blockID string, attrs map[string]any) (string, error) {
	generation := c.generation.Add(1)
	ctx, cancel := context.WithCancel(ctx)
	c.cancelMu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.cancelMu.Unlock()
	builder := requests.URL(c.baseURL).
		Path("/api/preview/block").
		Param("block", blockID).
		Header(previewGenerationHeader, strconv.FormatInt(generation, 10)).
		Client(c.httpClient)
	if len(attrs) > 0 {
		attrsJSON, err := json.Marshal(attrs)
		if err != nil {
			return "", err
		}
		builder = builder.Param("attributes", string(attrsJSON))
	}
	var body string
	if err := builder.ToString(&body).Fetch(ctx); err != nil {
		return "", err
	}
	if generation != c.generation.Load() {
		return "", errStalePreview
	}
	return body, nil
}
