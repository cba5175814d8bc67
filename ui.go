package main

import (
	"fmt"
	"time"

	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

// Field blocks render a single vendor field. They share one contract:
// without a resolvable vendor they produce no output at all, except in
// editor placeholder mode where a labeled placeholder is rendered instead.

func (a *storeBlocks) renderStoreNameBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreNameAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store name")
		return
	}
	hb.WriteElementOpen(attrs.TagName, "class", "store-name")
	if attrs.IsLink {
		hb.WriteElementOpen("a", "href", v.StoreURL)
		hb.WriteEscaped(v.StoreName)
		hb.WriteElementClose("a")
	} else {
		hb.WriteEscaped(v.StoreName)
	}
	hb.WriteElementClose(attrs.TagName)
}

func (a *storeBlocks) renderStoreAvatarBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreAvatarAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || v.AvatarURL == "" {
		a.renderEditorPlaceholder(hb, ctx, "Store avatar")
		return
	}
	hb.WriteElementOpen("div", "class", "store-avatar")
	if attrs.IsLink {
		hb.WriteElementOpen("a", "href", v.StoreURL)
	}
	hb.WriteElementOpen(
		"img", "src", v.AvatarURL, "alt", v.StoreName, "loading", "lazy",
		"style", fmt.Sprintf("width:%s;height:%s", attrs.Width, attrs.Height),
	)
	if attrs.IsLink {
		hb.WriteElementClose("a")
	}
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderStoreRatingBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreRatingAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store rating")
		return
	}
	hb.WriteElementOpen("div", "class", "store-rating")
	if v.RatingCount == 0 {
		hb.WriteElementOpen("span", "class", "store-rating-empty")
		hb.WriteEscaped("No reviews yet")
		hb.WriteElementClose("span")
		hb.WriteElementClose("div")
		return
	}
	hb.WriteElementOpen("span", "class", "store-rating-stars", "aria-label", fmt.Sprintf("Rated %.1f out of 5", v.Rating))
	full := int(v.Rating + 0.5)
	for i := 1; i <= 5; i++ {
		if i <= full {
			hb.WriteUnescaped("★")
		} else {
			hb.WriteUnescaped("☆")
		}
	}
	hb.WriteElementClose("span")
	if attrs.ShowCount {
		hb.WriteElementOpen("span", "class", "store-rating-count")
		hb.WriteEscaped(fmt.Sprintf("(%d)", v.RatingCount))
		hb.WriteElementClose("span")
	}
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderStoreAddressBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || v.Address == "" {
		a.renderEditorPlaceholder(hb, ctx, "Store address")
		return
	}
	hb.WriteElementOpen("address", "class", "store-address")
	hb.WriteEscaped(v.Address)
	hb.WriteElementClose("address")
}

func (a *storeBlocks) renderStorePhoneBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || v.Phone == "" {
		a.renderEditorPlaceholder(hb, ctx, "Store phone")
		return
	}
	hb.WriteElementOpen("div", "class", "store-phone")
	hb.WriteElementOpen("a", "href", "tel:"+v.Phone)
	hb.WriteEscaped(v.Phone)
	hb.WriteElementClose("a")
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderStoreStatusBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil {
		a.renderEditorPlaceholder(hb, ctx, "Store status")
		return
	}
	open := v.isOpenAt(time.Now())
	class, text := "store-status store-status-open", "Open"
	if !open {
		class, text = "store-status store-status-closed", "Closed"
	}
	notice := v.OpenNotice
	if !open {
		notice = v.CloseNotice
	}
	if notice != "" {
		text = notice
	}
	hb.WriteElementOpen("span", "class", class)
	hb.WriteEscaped(text)
	hb.WriteElementClose("span")
}

func (a *storeBlocks) renderStoreBannerBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseVendorFieldAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || v.BannerURL == "" {
		a.renderEditorPlaceholder(hb, ctx, "Store banner")
		return
	}
	hb.WriteElementOpen("div", "class", "store-banner")
	hb.WriteElementOpen("img", "src", v.BannerURL, "alt", v.StoreName, "loading", "lazy")
	hb.WriteElementClose("div")
}

func (a *storeBlocks) renderStoreHoursBlock(hb *htmlbuilder.HtmlBuilder, rawAttrs map[string]any, ctx *renderContext) {
	attrs := parseStoreHoursAttributes(rawAttrs)
	v := a.effectiveVendor(ctx, attrs.VendorID)
	if v == nil || !v.HoursEnabled || len(v.StoreHours) == 0 {
		a.renderEditorPlaceholder(hb, ctx, "Store hours")
		return
	}
	hb.WriteElementOpen("div", "class", "store-hours store-hours-"+attrs.Layout)
	if attrs.ShowCurrentStatus {
		a.renderStoreStatusBlock(hb, rawAttrs, ctx.withVendor(v))
	}
	if attrs.Layout == "compact" {
		today := weekdayNames[time.Now().Weekday()]
		hb.WriteElementOpen("span", "class", "store-hours-today")
		hb.WriteEscaped(storeDayLabel(today, v.StoreHours[today]))
		hb.WriteElementClose("span")
	} else {
		hb.WriteElementOpen("ul")
		// Week starts on Monday
		for i := 1; i <= 7; i++ {
			day := weekdayNames[i%7]
			hb.WriteElementOpen("li")
			hb.WriteEscaped(storeDayLabel(day, v.StoreHours[day]))
			hb.WriteElementClose("li")
		}
		hb.WriteElementClose("ul")
	}
	hb.WriteElementClose("div")
}

func storeDayLabel(day string, hours *storeDayHours) string {
	name := capitalizeDay(day)
	if hours == nil || hours.Status != "open" {
		return name + ": Closed"
	}
	return fmt.Sprintf("%s: %s - %s", name, hours.OpeningTime, hours.ClosingTime)
}

func capitalizeDay(day string) string {
	if day == "" {
		return day
	}
	return string(day[0]-'a'+'A') + day[1:]
}

// renderEditorPlaceholder renders a labeled placeholder instead of empty
// output, but only when the render context asks for editor output.
func (a *storeBlocks) renderEditorPlaceholder(hb *htmlbuilder.HtmlBuilder, ctx *renderContext, label string) {
	if !ctx.editorPlaceholder {
		return
	}
	hb.WriteElementOpen("div", "class", "block-placeholder")
	hb.WriteEscaped(label)
	hb.WriteElementClose("div")
}
