package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// marketplace is the data access contract of the marketplace backend.
// Everything the blocks know about sellers and products goes through it.
type marketplace interface {
	isSeller(id int) bool
	sellerByID(id int) (*seller, error)
	sellerIDBySlug(slug string) (int, bool)
	productByID(id int) (*product, error)
	productsBySeller(sellerID, limit, excludeProduct int) ([]*product, error)
	querySellers(q *sellerListingQuery) ([]*seller, int, error)
}

var errSellerNotFound = errors.New("seller not found")
var errProductNotFound = errors.New("product not found")

type seller struct {
	ID             int
	Slug           string
	StoreName      string
	AvatarURL      string
	BannerURL      string
	Phone          string
	Email          string
	ShowEmail      bool
	Address        string
	Rating         float64
	RatingCount    int
	Featured       bool
	HoursEnabled   bool
	OpenNotice     string
	CloseNotice    string
	StoreHours     map[string]*storeDayHours
	SocialProfiles map[string]string
	Terms          string
	Lat, Lng       float64
}

// storeDayHours is one weekday row of the configured store hours.
type storeDayHours struct {
	Status      string `json:"status"` // "open" or "close"
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type product struct {
	ID       int
	SellerID int
	Title    string
	Price    float64
	ImageURL string
	Created  string
}

// dbMarketplace is the sqlite-backed marketplace implementation.
type dbMarketplace struct {
	db *database
}

func (m *dbMarketplace) isSeller(id int) bool {
	if id < 1 {
		return false
	}
	row, err := m.db.queryRow("select count(*) from sellers where id = ? and enabled = true", id)
	if err != nil {
		return false
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return false
	}
	return count > 0
}

const sellerColumns = `id, slug, store_name, coalesce(avatar_url, ''), coalesce(banner_url, ''),
coalesce(phone, ''), coalesce(email, ''), show_email, coalesce(address, ''),
rating, rating_count, featured, hours_enabled, coalesce(open_notice, ''), coalesce(close_notice, ''),
coalesce(store_hours, ''), coalesce(social_profiles, ''), coalesce(terms, ''),
coalesce(lat, 0), coalesce(lng, 0)`

func scanSeller(row interface{ Scan(...any) error }) (*seller, error) {
	s := &seller{}
	var hoursJSON, socialJSON string
	err := row.Scan(
		&s.ID, &s.Slug, &s.StoreName, &s.AvatarURL, &s.BannerURL,
		&s.Phone, &s.Email, &s.ShowEmail, &s.Address,
		&s.Rating, &s.RatingCount, &s.Featured, &s.HoursEnabled, &s.OpenNotice, &s.CloseNotice,
		&hoursJSON, &socialJSON, &s.Terms,
		&s.Lat, &s.Lng,
	)
	if err != nil {
		return nil, err
	}
	if hoursJSON != "" {
		_ = json.Unmarshal([]byte(hoursJSON), &s.StoreHours)
	}
	if socialJSON != "" {
		_ = json.Unmarshal([]byte(socialJSON), &s.SocialProfiles)
	}
	return s, nil
}

func (m *dbMarketplace) sellerByID(id int) (*seller, error) {
	row, err := m.db.queryRow("select "+sellerColumns+" from sellers where id = ? and enabled = true", id)
	if err != nil {
		return nil, err
	}
	s, err := scanSeller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errSellerNotFound
	}
	return s, err
}

func (m *dbMarketplace) sellerIDBySlug(slug string) (int, bool) {
	if slug == "" {
		return 0, false
	}
	row, err := m.db.queryRow("select id from sellers where slug = ? and enabled = true", slug)
	if err != nil {
		return 0, false
	}
	var id int
	if err := row.Scan(&id); err != nil {
		return 0, false
	}
	return id, true
}

func (m *dbMarketplace) productByID(id int) (*product, error) {
	row, err := m.db.queryRow("select id, seller_id, title, price, coalesce(image_url, ''), created from products where id = ?", id)
	if err != nil {
		return nil, err
	}
	p := &product{}
	err = row.Scan(&p.ID, &p.SellerID, &p.Title, &p.Price, &p.ImageURL, &p.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errProductNotFound
	}
	return p, err
}

func (m *dbMarketplace) productsBySeller(sellerID, limit, excludeProduct int) ([]*product, error) {
	rows, err := m.db.query(
		"select id, seller_id, title, price, coalesce(image_url, ''), created from products where seller_id = ? and id != ? order by created desc limit ?",
		sellerID, excludeProduct, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*product
	for rows.Next() {
		p := &product{}
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Title, &p.Price, &p.ImageURL, &p.Created); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *dbMarketplace) querySellers(q *sellerListingQuery) ([]*seller, int, error) {
	where := "enabled = true"
	var args []any
	if q.Search != "" {
		where += " and store_name like ?"
		args = append(args, "%"+q.Search+"%")
	}
	if q.FeaturedOnly {
		where += " and featured = true"
	}
	// Total count first, the listing needs it for pagination
	countRow, err := m.db.queryRow("select count(*) from sellers where "+where, args...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(
		"select %s from sellers where %s order by %s limit ? offset ?",
		sellerColumns, where, q.orderClause(),
	)
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
	rows, err := m.db.query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var sellers []*seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, 0, err
		}
		sellers = append(sellers, s)
	}
	return sellers, total, rows.Err()
}
