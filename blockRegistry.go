package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"

	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

const blockNamespace = "storeblocks/"

type blockRenderFunc func(hb *htmlbuilder.HtmlBuilder, attrs map[string]any, ctx *renderContext)

type blockDescriptor struct {
	id     string
	dir    string
	render blockRenderFunc
}

// blockDescriptorFile is the part of a block.json descriptor the registry
// cares about.
type blockDescriptorFile struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// blockRegistry maps block identifiers to their descriptor directory and
// render callback. The table is built once at startup, passed through the
// registrar plugins and then frozen.
type blockRegistry struct {
	blocksDir  string
	blocks     map[string]*blockDescriptor
	registered map[string]*blockDescriptor
	frozen     bool
	debug      bool
}

func (a *storeBlocks) initBlockRegistry() {
	reg := &blockRegistry{
		blocksDir:  a.cfg.Blocks.Dir,
		blocks:     map[string]*blockDescriptor{},
		registered: map[string]*blockDescriptor{},
		debug:      a.cfg.Debug,
	}
	for name, render := range map[string]blockRenderFunc{
		// Store profile blocks
		"store-header":  a.renderStoreHeaderBlock,
		"store-sidebar": a.renderStoreSidebarBlock,
		"store-tabs":    a.renderStoreTabsBlock,
		"store-terms":   a.renderStoreTermsBlock,
		// Listing blocks
		"seller-query-loop": a.renderSellerQueryLoopBlock,
		"seller-pagination": a.renderSellerPaginationBlock,
		"seller-card":       a.renderSellerCardBlock,
		"seller-search":     a.renderSellerSearchBlock,
		// Vendor field blocks
		"store-name":    a.renderStoreNameBlock,
		"store-avatar":  a.renderStoreAvatarBlock,
		"store-rating":  a.renderStoreRatingBlock,
		"store-address": a.renderStoreAddressBlock,
		"store-phone":   a.renderStorePhoneBlock,
		"store-status":  a.renderStoreStatusBlock,
		"store-banner":  a.renderStoreBannerBlock,
		"store-hours":   a.renderStoreHoursBlock,
		// Product integration blocks
		"product-seller-info": a.renderProductSellerInfoBlock,
		"more-from-seller":    a.renderMoreFromSellerBlock,
		// Widget blocks
		"become-vendor-cta": a.renderBecomeVendorCTABlock,
		"contact-form":      a.renderContactFormBlock,
		"store-location":    a.renderStoreLocationBlock,
	} {
		reg.blocks[blockNamespace+name] = &blockDescriptor{
			id:     blockNamespace + name,
			dir:    name,
			render: render,
		}
	}
	// Registrar plugins may add or overwrite entries before the freeze
	for _, br := range a.blockRegistrars {
		br.RegisterBlocks(&blockRegistryWrapper{reg})
	}
	reg.frozen = true
	a.registry = reg
}

// registerAll walks the table and registers every entry that has a readable
// descriptor file. Broken entries are skipped, one bad block must not take
// down the rest of the page.
func (r *blockRegistry) registerAll() {
	for id, b := range r.blocks {
		descriptor := filepath.Join(r.blocksDir, b.dir, "block.json")
		content, err := os.ReadFile(descriptor)
		if err != nil {
			if r.debug {
				log.Println("Skipping block without descriptor:", id)
			}
			continue
		}
		var df blockDescriptorFile
		if err := json.Unmarshal(content, &df); err != nil {
			if r.debug {
				log.Println("Skipping block with invalid descriptor:", id)
			}
			continue
		}
		r.registered[id] = b
	}
}

func (r *blockRegistry) isRegistered(id string) bool {
	_, ok := r.registered[id]
	return ok
}

func (r *blockRegistry) listRegistered() []string {
	ids := make([]string, 0, len(r.registered))
	for id := range r.registered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// blockRegistryWrapper is the registry view handed to registrar plugins.
// Adding an existing identifier overwrites its directory but keeps the
// built-in render callback, the last registration wins.
type blockRegistryWrapper struct {
	reg *blockRegistry
}

func (w *blockRegistryWrapper) Add(id, dir string) {
	if w.reg.frozen {
		return
	}
	if existing, ok := w.reg.blocks[id]; ok {
		existing.dir = dir
		return
	}
	w.reg.blocks[id] = &blockDescriptor{id: id, dir: dir}
}
