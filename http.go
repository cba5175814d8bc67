package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/justinas/alice"
)

func (a *storeBlocks) startServer() error {
	if a.cfg.Server.Logging {
		f, err := os.OpenFile(a.cfg.Server.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		a.shutdown.Add(func() {
			_ = f.Close()
		})
		a.logMiddleware = func(next http.Handler) http.Handler {
			lh := handlers.CombinedLoggingHandler(f, next)
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Remove remote address for privacy
				r.RemoteAddr = ""
				lh.ServeHTTP(w, r)
			})
		}
	}
	a.d = &dynamicHandler{}
	a.reloadRouter()
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
		Handler:           a.d,
		ReadHeaderTimeout: 1 * time.Minute,
	}
	a.shutdown.Add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		log.Println("Stopped server")
	})
	log.Println("Server listening on", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// reloadRouter rebuilds the router and swaps it in, e.g. after plugins
// changed the registered blocks. Cached pages would keep serving the old
// markup, so the cache gets purged too.
func (a *storeBlocks) reloadRouter() {
	a.d.swapHandler(a.buildRouter())
	a.cache.purge()
}

func (a *storeBlocks) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.GetHead)
	if !a.cfg.Cache.Enable {
		r.Use(middleware.NoCache)
	}

	if a.cfg.Debug {
		r.Mount("/debug", middleware.Profiler())
	}

	mp := a.cfg.Marketplace

	// Vendor listing
	r.With(
		keepSelectedQueryParams("paged", "seller_search", "stores_orderby", "cache"),
		a.cacheMiddleware,
	).Get(mp.ListingPath, a.serveSellerListing)

	// Single store, tabs selected via query values
	r.With(
		keepSelectedQueryParams("toc", "store_review", "store", "author", "cache"),
		a.cacheMiddleware,
	).Get(mp.StorePathPrefix+"/{storeslug}", a.serveStorePage)

	// Single product
	r.With(a.cacheMiddleware).Get(mp.ProductPathPrefix+"/{productid:[0-9]+}", a.serveProductPage)

	// Editor API
	r.Route("/api", a.apiRouter)

	// Health
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r.With(a.cacheMiddleware).NotFound(a.serve404)

	chain := alice.New()
	if a.logMiddleware != nil {
		chain = chain.Append(a.logMiddleware)
	}
	chain = chain.Append(a.securityHeaders)
	return chain.Then(r)
}

type dynamicHandler struct {
	realHandler atomic.Value
}

func (d *dynamicHandler) swapHandler(h http.Handler) {
	d.realHandler.Store(h)
}

func (d *dynamicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.realHandler.Load().(http.Handler).ServeHTTP(w, r)
}
