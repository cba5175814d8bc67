package main

import (
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/vcraescu/go-paginator/v2"
	"go.storeblocks.app/app/pkgs/cache"
)

const defaultSellersPerPage = 12

type sellerSortKey string

const (
	sortByName        sellerSortKey = "name"
	sortByMostRecent  sellerSortKey = "most_recent"
	sortByTotalOrders sellerSortKey = "total_orders"
	sortByRandom      sellerSortKey = "random"
	sortByRating      sellerSortKey = "rating"
	sortByFeatured    sellerSortKey = "featured"
)

var allowedSellerSortKeys = []sellerSortKey{
	sortByName, sortByMostRecent, sortByTotalOrders, sortByRandom, sortByRating, sortByFeatured,
}

// parseSellerSortKey allow-lists a sort key from a query parameter,
// anything unknown falls back to sorting by name.
func parseSellerSortKey(s string) sellerSortKey {
	if key := sellerSortKey(s); lo.Contains(allowedSellerSortKeys, key) {
		return key
	}
	return sortByName
}

type sellerListingQuery struct {
	Search       string
	SortKey      sellerSortKey
	Page         int
	PerPage      int
	FeaturedOnly bool
	// Resolved order column for the random sort, see resolveRandomOrderColumn
	randomColumn string
}

func (q *sellerListingQuery) orderClause() string {
	switch q.SortKey {
	case sortByMostRecent:
		return "id desc"
	case sortByTotalOrders:
		return "(select count(*) from seller_orders where seller_orders.seller_id = sellers.id) desc, store_name collate nocase asc"
	case sortByRandom:
		if q.randomColumn != "" {
			return q.randomColumn
		}
		return "id"
	case sortByRating:
		return "rating desc, rating_count desc"
	case sortByFeatured:
		return "featured desc, store_name collate nocase asc"
	default:
		return "store_name collate nocase asc"
	}
}

// sellerListingResult is what the query loop block renders and what the
// pagination and search blocks read from the render context.
type sellerListingResult struct {
	Sellers     []*seller
	Total       int
	TotalPages  int
	CurrentPage int
	PerPage     int
}

const randomOrderCacheKey = "sellerListingRandomOrder"
const randomOrderCacheDuration = 5 * time.Minute

var randomOrderColumns = []string{
	"id",
	"slug, id",
	"store_name, id",
	"registered, id",
	"rating, id",
}

func (a *storeBlocks) initRandomOrderCache() {
	a.randomOrderCache = cache.New[string, string](time.Minute, 10)
	a.shutdown.Add(a.randomOrderCache.Close)
}

// resolveRandomOrderColumn picks the order column for the random sort and
// keeps it for five minutes, so consecutive listing pages stay consistent.
// The choice is process wide, all visitors share one "random" order per window.
func (a *storeBlocks) resolveRandomOrderColumn() string {
	if col, ok := a.randomOrderCache.Get(randomOrderCacheKey); ok {
		return col
	}
	col := randomOrderColumns[rand.Intn(len(randomOrderColumns))]
	a.randomOrderCache.Set(randomOrderCacheKey, col, randomOrderCacheDuration, 1)
	return col
}

// runSellerListing executes the listing query for the current request.
// URL parameters override block attributes, then query modifier plugins
// get a chance to adjust the resolved query.
func (a *storeBlocks) runSellerListing(rc *requestContext, attrs *queryLoopAttributes) (*sellerListingResult, error) {
	q := &sellerListingQuery{
		Search:       rc.sellerSearch,
		SortKey:      attrs.OrderBy,
		Page:         rc.page,
		PerPage:      attrs.PerPage,
		FeaturedOnly: attrs.ShowFeaturedOnly,
	}
	if rc.sortKey != "" {
		q.SortKey = parseSellerSortKey(rc.sortKey)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = a.cfg.Marketplace.PerPage
	}
	if q.SortKey == sortByRandom {
		q.randomColumn = a.resolveRandomOrderColumn()
	}
	for _, qm := range a.queryModifiers {
		qm.ModifySellerQuery(&sellerQueryWrapper{q})
	}
	p := paginator.New(&sellerPaginationAdapter{query: q, market: a.market}, q.PerPage)
	p.SetPage(q.Page)
	var sellers []*seller
	if err := p.Results(&sellers); err != nil {
		return nil, err
	}
	total, _ := p.Nums()
	totalPages, _ := p.PageNums()
	return &sellerListingResult{
		Sellers:     sellers,
		Total:       int(total),
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
	}, nil
}

type sellerPaginationAdapter struct {
	query   *sellerListingQuery
	market  marketplace
	nums    int64
	getNums sync.Once
}

func (p *sellerPaginationAdapter) Nums() (int64, error) {
	p.getNums.Do(func() {
		q := *p.query
		q.Page, q.PerPage = 1, 1
		_, total, err := p.market.querySellers(&q)
		if err == nil {
			p.nums = int64(total)
		}
	})
	return p.nums, nil
}

func (p *sellerPaginationAdapter) Slice(offset, length int, data any) error {
	q := *p.query
	q.Page = offset/length + 1
	q.PerPage = length
	sellers, _, err := p.market.querySellers(&q)
	if err != nil {
		return err
	}
	*(data.(*[]*seller)) = sellers
	return nil
}
