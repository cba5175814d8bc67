package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// httpCache caches rendered pages. Query parameters select tabs, listing
// pages and sort orders, so they are part of the cache key.
type httpCache struct {
	items      map[string]*cacheItem
	mutex      sync.RWMutex
	group      singleflight.Group
	expiration int64
}

type cacheItem struct {
	creationTime int64
	code         int
	header       http.Header
	body         []byte
}

func (a *storeBlocks) initHTTPCache() {
	a.cache = &httpCache{
		items:      map[string]*cacheItem{},
		expiration: a.cfg.Cache.Expiration,
	}
}

func (a *storeBlocks) cacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Cache.Enable ||
			r.URL.Query().Get("cache") == "0" ||
			(r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.Query().Encode()
		}
		itemInterface, _, _ := a.cache.group.Do(key, func() (any, error) {
			return a.cache.getOrRender(key, next, r), nil
		})
		item := itemInterface.(*cacheItem)
		cacheTime := time.Unix(item.creationTime, 0).Format(time.RFC1123)
		expiresTime := time.Unix(item.creationTime+a.cache.expiration, 0).Format(time.RFC1123)
		if ims := r.Header.Get("If-Modified-Since"); ims != "" && ims == cacheTime {
			setCacheHeaders(w, cacheTime, expiresTime)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		for k, v := range item.header {
			w.Header()[k] = v
		}
		setCacheHeaders(w, cacheTime, expiresTime)
		w.WriteHeader(item.code)
		_, _ = w.Write(item.body)
	})
}

func setCacheHeaders(w http.ResponseWriter, cacheTime, expiresTime string) {
	w.Header().Set("Cache-Control", "public")
	w.Header().Set("Last-Modified", cacheTime)
	w.Header().Set("Expires", expiresTime)
}

func (c *httpCache) getOrRender(key string, next http.Handler, r *http.Request) *cacheItem {
	c.mutex.RLock()
	item, ok := c.items[key]
	c.mutex.RUnlock()
	if ok && item.creationTime >= time.Now().Unix()-c.expiration {
		return item
	}
	recorder := httptest.NewRecorder()
	next.ServeHTTP(recorder, r)
	item = &cacheItem{
		creationTime: time.Now().Unix(),
		code:         recorder.Code,
		header:       recorder.Header(),
		body:         recorder.Body.Bytes(),
	}
	c.mutex.Lock()
	c.items[key] = item
	c.mutex.Unlock()
	return item
}

// purge drops all cached pages, used by plugins after data changes.
func (c *httpCache) purge() {
	c.mutex.Lock()
	c.items = map[string]*cacheItem{}
	c.mutex.Unlock()
}
