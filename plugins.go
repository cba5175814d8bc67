package main

import (
	"embed"
	"io/fs"
	"reflect"

	"go.storeblocks.app/app/pkgs/plugins"
	"go.storeblocks.app/app/pkgs/plugintypes"
	"go.storeblocks.app/app/pkgs/yaegiwrappers"
)

//go:embed plugins/*
var pluginsFS embed.FS

const (
	pluginSetAppType           = "setapp"
	pluginSetConfigType        = "setconfig"
	pluginExecType             = "exec"
	pluginBlockRegistrarType   = "blockregistrar"
	pluginQueryModifierType    = "querymodifier"
	pluginTemplateProviderType = "templateprovider"
)

func (a *storeBlocks) initPlugins() error {
	subFS, err := fs.Sub(pluginsFS, "plugins")
	if err != nil {
		return err
	}
	a.pluginHost = plugins.NewPluginHost(
		map[string]reflect.Type{
			pluginSetAppType:           reflect.TypeOf((*plugintypes.SetApp)(nil)).Elem(),
			pluginSetConfigType:        reflect.TypeOf((*plugintypes.SetConfig)(nil)).Elem(),
			pluginExecType:             reflect.TypeOf((*plugintypes.Exec)(nil)).Elem(),
			pluginBlockRegistrarType:   reflect.TypeOf((*plugintypes.BlockRegistrar)(nil)).Elem(),
			pluginQueryModifierType:    reflect.TypeOf((*plugintypes.SellerQueryModifier)(nil)).Elem(),
			pluginTemplateProviderType: reflect.TypeOf((*plugintypes.TemplateProvider)(nil)).Elem(),
		},
		yaegiwrappers.Symbols,
		subFS,
	)

	for _, pc := range a.cfg.Plugins {
		loaded, err := a.pluginHost.LoadPlugin(&plugins.PluginConfig{
			Path:       pc.Path,
			ImportPath: pc.Import,
		})
		if err != nil {
			return err
		}
		if p, ok := loaded[pluginSetConfigType]; ok {
			p.(plugintypes.SetConfig).SetConfig(pc.Config)
		}
		if p, ok := loaded[pluginSetAppType]; ok {
			p.(plugintypes.SetApp).SetApp(a)
		}
		if p, ok := loaded[pluginBlockRegistrarType]; ok {
			a.blockRegistrars = append(a.blockRegistrars, p.(plugintypes.BlockRegistrar))
		}
		if p, ok := loaded[pluginQueryModifierType]; ok {
			a.queryModifiers = append(a.queryModifiers, p.(plugintypes.SellerQueryModifier))
		}
		if p, ok := loaded[pluginTemplateProviderType]; ok {
			a.templateProviders = append(a.templateProviders, p.(plugintypes.TemplateProvider))
		}
	}

	for _, p := range a.getPlugins(pluginExecType) {
		go p.(plugintypes.Exec).Exec()
	}

	return nil
}

func (a *storeBlocks) getPlugins(typ string) []any {
	if a.pluginHost == nil {
		return []any{}
	}
	return a.pluginHost.GetPlugins(typ)
}

// Implement the plugin app interface

func (a *storeBlocks) GetDatabase() plugintypes.Database {
	return a.db
}

func (a *storeBlocks) IsSeller(id int) bool {
	return a.market.isSeller(id)
}

func (a *storeBlocks) GetVendor(id int) (plugintypes.Vendor, error) {
	return a.vendorRecord(id)
}

func (a *storeBlocks) PurgeCache() {
	a.cache.purge()
}

func (v *vendorRecord) GetID() int {
	return v.ID
}

func (v *vendorRecord) GetStoreName() string {
	return v.StoreName
}

func (v *vendorRecord) GetStoreURL() string {
	return v.StoreURL
}

func (v *vendorRecord) GetRating() (float64, int) {
	return v.Rating, v.RatingCount
}

func (v *vendorRecord) IsFeatured() bool {
	return v.Featured
}

// sellerQueryWrapper exposes the listing query to plugins.
type sellerQueryWrapper struct {
	q *sellerListingQuery
}

func (w *sellerQueryWrapper) Search() string         { return w.q.Search }
func (w *sellerQueryWrapper) SetSearch(s string)     { w.q.Search = s }
func (w *sellerQueryWrapper) SortKey() string        { return string(w.q.SortKey) }
func (w *sellerQueryWrapper) SetSortKey(s string)    { w.q.SortKey = parseSellerSortKey(s) }
func (w *sellerQueryWrapper) FeaturedOnly() bool     { return w.q.FeaturedOnly }
func (w *sellerQueryWrapper) SetFeaturedOnly(f bool) { w.q.FeaturedOnly = f }
