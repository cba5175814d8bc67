package main

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.storeblocks.app/app/pkgs/htmlbuilder"
)

// fakeMarketplace is an in-memory marketplace for tests.
type fakeMarketplace struct {
	sellers  map[int]*seller
	products map[int]*product
}

func newFakeMarketplace() *fakeMarketplace {
	return &fakeMarketplace{
		sellers:  map[int]*seller{},
		products: map[int]*product{},
	}
}

func (m *fakeMarketplace) addSeller(s *seller) *fakeMarketplace {
	m.sellers[s.ID] = s
	return m
}

func (m *fakeMarketplace) addProduct(p *product) *fakeMarketplace {
	m.products[p.ID] = p
	return m
}

func (m *fakeMarketplace) isSeller(id int) bool {
	_, ok := m.sellers[id]
	return ok
}

func (m *fakeMarketplace) sellerByID(id int) (*seller, error) {
	s, ok := m.sellers[id]
	if !ok {
		return nil, errSellerNotFound
	}
	return s, nil
}

func (m *fakeMarketplace) sellerIDBySlug(slug string) (int, bool) {
	for id, s := range m.sellers {
		if s.Slug == slug {
			return id, true
		}
	}
	return 0, false
}

func (m *fakeMarketplace) productByID(id int) (*product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errProductNotFound
	}
	return p, nil
}

func (m *fakeMarketplace) productsBySeller(sellerID, limit, excludeProduct int) ([]*product, error) {
	var products []*product
	for _, p := range m.products {
		if p.SellerID == sellerID && p.ID != excludeProduct {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (m *fakeMarketplace) querySellers(q *sellerListingQuery) ([]*seller, int, error) {
	var matched []*seller
	for _, s := range m.sellers {
		if q.Search != "" && !strings.Contains(strings.ToLower(s.StoreName), strings.ToLower(q.Search)) {
			continue
		}
		if q.FeaturedOnly && !s.Featured {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch q.SortKey {
		case sortByMostRecent:
			return a.ID > b.ID
		case sortByRating:
			return a.Rating > b.Rating
		case sortByFeatured:
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.StoreName < b.StoreName
		default:
			return a.StoreName < b.StoreName
		}
	})
	total := len(matched)
	offset := (q.Page - 1) * q.PerPage
	if offset > total {
		offset = total
	}
	end := offset + q.PerPage
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func testSeller() *seller {
	return &seller{
		ID:          42,
		Slug:        "acme",
		StoreName:   "Acme & Co",
		AvatarURL:   "https://cdn.example.com/acme.png",
		Phone:       "+1234567890",
		Email:       "acme@example.com",
		ShowEmail:   true,
		Address:     "1 Main Street",
		Rating:      4.5,
		RatingCount: 12,
	}
}

func newTestApp(t *testing.T) *storeBlocks {
	app := &storeBlocks{
		cfg:    createDefaultConfig(),
		market: newFakeMarketplace(),
	}
	require.NoError(t, app.initConfig())
	app.initHTTPCache()
	app.initRandomOrderCache()
	require.NoError(t, app.initTemplates())
	app.initBlockRegistry()
	app.registry.registerAll()
	t.Cleanup(app.shutdown.ShutdownAndWait)
	return app
}

func (a *storeBlocks) fakeMarket() *fakeMarketplace {
	return a.market.(*fakeMarketplace)
}

// renderBlockToString renders a single block without the minifier.
func renderBlockToString(a *storeBlocks, blockID string, attrs map[string]any, ctx *renderContext) string {
	buf := &bytes.Buffer{}
	a.renderBlock(htmlbuilder.NewHtmlBuilder(buf), blockID, attrs, ctx)
	return buf.String()
}
