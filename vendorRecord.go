package main

import (
	"strings"
	"time"
)

// vendorRecord is the flat, normalized view of a seller that render
// functions consume. It is assembled per render pass and never cached here.
type vendorRecord struct {
	ID             int
	StoreName      string
	StoreURL       string
	AvatarURL      string
	BannerURL      string
	Phone          string
	Email          string // empty unless the vendor chose to show it
	Address        string
	Rating         float64
	RatingCount    int
	SocialProfiles map[string]string
	HoursEnabled   bool
	StoreHours     map[string]*storeDayHours
	OpenNotice     string
	CloseNotice    string
	Featured       bool
	Terms          string
	Lat, Lng       float64
}

// vendorRecord builds the record for a seller id. It fails closed: an id
// that is not a recognized seller yields "not found", never partial data.
func (a *storeBlocks) vendorRecord(id int) (*vendorRecord, error) {
	if id < 1 || !a.market.isSeller(id) {
		return nil, errSellerNotFound
	}
	s, err := a.market.sellerByID(id)
	if err != nil {
		return nil, err
	}
	return a.vendorRecordFromSeller(s), nil
}

// vendorRecordFromSeller normalizes an already loaded seller row, used by
// the listing loop to avoid reloading every seller on the page.
func (a *storeBlocks) vendorRecordFromSeller(s *seller) *vendorRecord {
	v := &vendorRecord{
		ID:             s.ID,
		StoreName:      s.StoreName,
		StoreURL:       a.storeURL(s.Slug),
		AvatarURL:      s.AvatarURL,
		BannerURL:      s.BannerURL,
		Phone:          s.Phone,
		Address:        s.Address,
		Rating:         s.Rating,
		RatingCount:    s.RatingCount,
		SocialProfiles: s.SocialProfiles,
		HoursEnabled:   s.HoursEnabled,
		StoreHours:     s.StoreHours,
		OpenNotice:     s.OpenNotice,
		CloseNotice:    s.CloseNotice,
		Featured:       s.Featured,
		Terms:          s.Terms,
		Lat:            s.Lat,
		Lng:            s.Lng,
	}
	if s.ShowEmail {
		v.Email = s.Email
	}
	return v
}

func (a *storeBlocks) storeURL(slug string) string {
	return strings.TrimSuffix(a.cfg.Server.PublicAddress, "/") + a.cfg.Marketplace.StorePathPrefix + "/" + slug
}

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// isOpenAt checks the structured store hours for the given moment.
// Vendors without enabled store hours count as always open.
func (v *vendorRecord) isOpenAt(t time.Time) bool {
	if !v.HoursEnabled || len(v.StoreHours) == 0 {
		return true
	}
	day, ok := v.StoreHours[weekdayNames[t.Weekday()]]
	if !ok || day.Status != "open" {
		return false
	}
	opening, err1 := time.Parse("15:04", day.OpeningTime)
	closing, err2 := time.Parse("15:04", day.ClosingTime)
	if err1 != nil || err2 != nil {
		return true
	}
	minutes := t.Hour()*60 + t.Minute()
	openMinutes := opening.Hour()*60 + opening.Minute()
	closeMinutes := closing.Hour()*60 + closing.Minute()
	return minutes >= openMinutes && minutes < closeMinutes
}
