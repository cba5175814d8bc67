package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Typed attribute structs, one per block. Raw attribute maps get parsed and
// defaulted once here at the boundary, the render functions only see the
// validated struct.

func attrString(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok {
		return cast.ToString(v)
	}
	return def
}

func attrBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key]; ok {
		return cast.ToBool(v)
	}
	return def
}

func attrInt(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok {
		return cast.ToInt(v)
	}
	return def
}

func attrFloat(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		return cast.ToFloat64(v)
	}
	return def
}

var allowedNameTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "span"}

type storeNameAttributes struct {
	TagName  string
	IsLink   bool
	VendorID int
}

func parseStoreNameAttributes(m map[string]any) *storeNameAttributes {
	attrs := &storeNameAttributes{
		TagName:  attrString(m, "tagName", "h2"),
		IsLink:   attrBool(m, "isLink", true),
		VendorID: attrInt(m, "vendorId", 0),
	}
	if !lo.Contains(allowedNameTags, attrs.TagName) {
		attrs.TagName = "h2"
	}
	return attrs
}

type storeAvatarAttributes struct {
	Width    string
	Height   string
	IsLink   bool
	VendorID int
}

func parseStoreAvatarAttributes(m map[string]any) *storeAvatarAttributes {
	return &storeAvatarAttributes{
		Width:    attrString(m, "width", "80px"),
		Height:   attrString(m, "height", "80px"),
		IsLink:   attrBool(m, "isLink", true),
		VendorID: attrInt(m, "vendorId", 0),
	}
}

type storeRatingAttributes struct {
	ShowCount bool
	VendorID  int
}

func parseStoreRatingAttributes(m map[string]any) *storeRatingAttributes {
	return &storeRatingAttributes{
		ShowCount: attrBool(m, "showCount", true),
		VendorID:  attrInt(m, "vendorId", 0),
	}
}

type vendorFieldAttributes struct {
	VendorID int
}

func parseVendorFieldAttributes(m map[string]any) *vendorFieldAttributes {
	return &vendorFieldAttributes{
		VendorID: attrInt(m, "vendorId", 0),
	}
}

type storeHoursAttributes struct {
	Layout            string // "compact" or "full"
	ShowCurrentStatus bool
	VendorID          int
}

func parseStoreHoursAttributes(m map[string]any) *storeHoursAttributes {
	attrs := &storeHoursAttributes{
		Layout:            attrString(m, "layout", "compact"),
		ShowCurrentStatus: attrBool(m, "showCurrentStatus", true),
		VendorID:          attrInt(m, "vendorId", 0),
	}
	if attrs.Layout != "compact" && attrs.Layout != "full" {
		attrs.Layout = "compact"
	}
	return attrs
}

type storeHeaderAttributes struct {
	ShowBanner      bool
	ShowContactInfo bool
	ShowSocialLinks bool
	ShowStoreHours  bool
	Layout          string
	VendorID        int
}

func parseStoreHeaderAttributes(m map[string]any) *storeHeaderAttributes {
	attrs := &storeHeaderAttributes{
		ShowBanner:      attrBool(m, "showBanner", true),
		ShowContactInfo: attrBool(m, "showContactInfo", true),
		ShowSocialLinks: attrBool(m, "showSocialLinks", true),
		ShowStoreHours:  attrBool(m, "showStoreHours", true),
		Layout:          attrString(m, "layout", "default"),
		VendorID:        attrInt(m, "vendorId", 0),
	}
	if attrs.Layout != "default" && attrs.Layout != "compact" {
		attrs.Layout = "default"
	}
	return attrs
}

type storeSidebarAttributes struct {
	ShowContactInfo bool
	ShowStoreHours  bool
	ShowLocation    bool
	VendorID        int
}

func parseStoreSidebarAttributes(m map[string]any) *storeSidebarAttributes {
	return &storeSidebarAttributes{
		ShowContactInfo: attrBool(m, "showContactInfo", true),
		ShowStoreHours:  attrBool(m, "showStoreHours", true),
		ShowLocation:    attrBool(m, "showLocation", true),
		VendorID:        attrInt(m, "vendorId", 0),
	}
}

type queryLoopAttributes struct {
	PerPage          int
	Columns          int
	DisplayLayout    string // "grid" or "list"
	OrderBy          sellerSortKey
	ShowFeaturedOnly bool
	QueryID          string
}

func parseQueryLoopAttributes(m map[string]any) *queryLoopAttributes {
	attrs := &queryLoopAttributes{
		PerPage:          attrInt(m, "perPage", 12),
		Columns:          attrInt(m, "columns", 3),
		DisplayLayout:    attrString(m, "displayLayout", "grid"),
		OrderBy:          parseSellerSortKey(attrString(m, "orderBy", "name")),
		ShowFeaturedOnly: attrBool(m, "showFeaturedOnly", false),
		QueryID:          attrString(m, "queryId", ""),
	}
	if attrs.DisplayLayout != "grid" && attrs.DisplayLayout != "list" {
		attrs.DisplayLayout = "grid"
	}
	if attrs.Columns < 1 || attrs.Columns > 6 {
		attrs.Columns = 3
	}
	return attrs
}

type paginationAttributes struct {
	MidSize   int
	ShowLabel bool
}

func parsePaginationAttributes(m map[string]any) *paginationAttributes {
	attrs := &paginationAttributes{
		MidSize:   attrInt(m, "midSize", 2),
		ShowLabel: attrBool(m, "showLabel", false),
	}
	if attrs.MidSize < 1 {
		attrs.MidSize = 2
	}
	return attrs
}

type sellerCardAttributes struct {
	UseBannerAsBackground bool
	BackgroundOverlay     float64
	VendorID              int
}

func parseSellerCardAttributes(m map[string]any) *sellerCardAttributes {
	attrs := &sellerCardAttributes{
		UseBannerAsBackground: attrBool(m, "useBannerAsBackground", false),
		BackgroundOverlay:     attrFloat(m, "backgroundOverlay", 0.5),
		VendorID:              attrInt(m, "vendorId", 0),
	}
	if attrs.BackgroundOverlay < 0 || attrs.BackgroundOverlay > 1 {
		attrs.BackgroundOverlay = 0.5
	}
	return attrs
}

type sellerSearchAttributes struct {
	EnableSearch      bool
	SearchPlaceholder string
	EnableSortBy      bool
	SortByLabel       string
	ButtonText        string
	ShowStoreCount    bool
}

func parseSellerSearchAttributes(m map[string]any) *sellerSearchAttributes {
	return &sellerSearchAttributes{
		EnableSearch:      attrBool(m, "enableSearch", true),
		SearchPlaceholder: attrString(m, "searchPlaceholder", "Search stores..."),
		EnableSortBy:      attrBool(m, "enableSortBy", true),
		SortByLabel:       attrString(m, "sortByLabel", "Sort by:"),
		ButtonText:        attrString(m, "buttonText", "Search"),
		ShowStoreCount:    attrBool(m, "showStoreCount", true),
	}
}

type productSellerInfoAttributes struct {
	ShowRating bool
	ShowStatus bool
}

func parseProductSellerInfoAttributes(m map[string]any) *productSellerInfoAttributes {
	return &productSellerInfoAttributes{
		ShowRating: attrBool(m, "showRating", true),
		ShowStatus: attrBool(m, "showStatus", false),
	}
}

type moreFromSellerAttributes struct {
	Limit   int
	Heading string
}

func parseMoreFromSellerAttributes(m map[string]any) *moreFromSellerAttributes {
	attrs := &moreFromSellerAttributes{
		Limit:   attrInt(m, "limit", 4),
		Heading: attrString(m, "heading", "More from this seller"),
	}
	if attrs.Limit < 1 || attrs.Limit > 12 {
		attrs.Limit = 4
	}
	return attrs
}

type becomeVendorCTAAttributes struct {
	Heading    string
	Text       string
	ButtonText string
	ButtonURL  string
}

func parseBecomeVendorCTAAttributes(m map[string]any) *becomeVendorCTAAttributes {
	return &becomeVendorCTAAttributes{
		Heading:    attrString(m, "heading", "Become a vendor"),
		Text:       attrString(m, "text", "Open your own store and start selling today."),
		ButtonText: attrString(m, "buttonText", "Get started"),
		ButtonURL:  attrString(m, "buttonUrl", ""),
	}
}

type contactFormAttributes struct {
	ButtonText string
	VendorID   int
}

func parseContactFormAttributes(m map[string]any) *contactFormAttributes {
	return &contactFormAttributes{
		ButtonText: attrString(m, "buttonText", "Send message"),
		VendorID:   attrInt(m, "vendorId", 0),
	}
}

type storeLocationAttributes struct {
	Height   int
	VendorID int
}

func parseStoreLocationAttributes(m map[string]any) *storeLocationAttributes {
	attrs := &storeLocationAttributes{
		Height:   attrInt(m, "height", 400),
		VendorID: attrInt(m, "vendorId", 0),
	}
	if attrs.Height < 100 {
		attrs.Height = 400
	}
	return attrs
}
