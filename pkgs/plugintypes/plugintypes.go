// Package plugintypes defines the interfaces storeblocks plugins can
// implement and the app surface they get access to.
package plugintypes

import (
	"database/sql"
)

// SetApp is implemented by plugins that want access to the app instance.
type SetApp interface {
	SetApp(App)
}

// SetConfig is implemented by plugins that take configuration.
type SetConfig interface {
	SetConfig(map[string]any)
}

// Exec plugins run once in a Goroutine after startup.
type Exec interface {
	SetApp
	SetConfig
	Exec()
}

// BlockRegistrar plugins get consulted while the block registry is built
// and may add or overwrite block entries. The last registration for an
// identifier wins.
type BlockRegistrar interface {
	RegisterBlocks(BlockRegistry)
}

// SellerQueryModifier plugins may adjust the resolved seller listing query
// before it is executed.
type SellerQueryModifier interface {
	ModifySellerQuery(SellerQuery)
}

// TemplateProvider plugins may supply the template content for a store tab,
// taking precedence over the bundled template files. Returning ok == false
// passes the decision on.
type TemplateProvider interface {
	TemplateForTab(tab string) (content string, ok bool)
}

// App is the app surface exposed to plugins.
type App interface {
	// Access the underlying database
	GetDatabase() Database
	// Check whether an id belongs to a recognized seller
	IsSeller(id int) bool
	// Get the normalized vendor record for a seller id
	GetVendor(id int) (Vendor, error)
	// Purge the page cache
	PurgeCache()
}

// Database provides access to the app database.
type Database interface {
	Exec(string, ...any) (sql.Result, error)
	Query(string, ...any) (*sql.Rows, error)
	QueryRow(string, ...any) (*sql.Row, error)
}

// Vendor is the read-only vendor record view.
type Vendor interface {
	GetID() int
	GetStoreName() string
	GetStoreURL() string
	GetRating() (mean float64, count int)
	IsFeatured() bool
}

// BlockRegistry is the mutable registry view passed to BlockRegistrar
// plugins before the registry is frozen.
type BlockRegistry interface {
	Add(id, dir string)
}

// SellerQuery is the mutable listing query view passed to
// SellerQueryModifier plugins.
type SellerQuery interface {
	Search() string
	SetSearch(string)
	SortKey() string
	SetSortKey(string)
	FeaturedOnly() bool
	SetFeaturedOnly(bool)
}
