package main

import (
	"net/http"
	"sync"

	shutdowner "git.jlel.se/jlelse/go-shutdowner"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.storeblocks.app/app/pkgs/cache"
	"go.storeblocks.app/app/pkgs/minify"
	"go.storeblocks.app/app/pkgs/plugins"
	"go.storeblocks.app/app/pkgs/plugintypes"
)

type storeBlocks struct {
	// Blocks
	registry *blockRegistry
	// Cache
	cache *httpCache
	// Config
	cfg *config
	// Database
	db *database
	// HTTP Router
	d             *dynamicHandler
	logMiddleware func(http.Handler) http.Handler
	// Listing
	randomOrderCache *cache.Cache[string, string]
	// Markdown (vendor rich text)
	mdInit    sync.Once
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	// Marketplace
	market marketplace
	// Minify
	min minify.Minifier
	// Plugins
	pluginHost        *plugins.PluginHost
	blockRegistrars   []plugintypes.BlockRegistrar
	queryModifiers    []plugintypes.SellerQueryModifier
	templateProviders []plugintypes.TemplateProvider
	// Shutdown
	shutdown shutdowner.Shutdowner
	// Templates
	templates *templateSet
}

// initComponents wires everything that doesn't need the HTTP server yet.
// Startup order matters: the marketplace must exist before blocks resolve
// vendors, and plugins must run before the block registry is frozen.
func (a *storeBlocks) initComponents() error {
	if a.market == nil {
		a.market = &dbMarketplace{db: a.db}
	}
	a.initHTTPCache()
	a.initRandomOrderCache()
	if err := a.initTemplates(); err != nil {
		return err
	}
	a.initBlockRegistry()
	a.registry.registerAll()
	return nil
}

func (a *storeBlocks) initMarkdown() {
	a.mdInit.Do(func() {
		a.md = goldmark.New()
		a.sanitizer = bluemonday.UGCPolicy()
	})
}
