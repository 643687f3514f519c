package listing

import (
	"net/url"
	"strconv"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const DefaultLimit = 5

// Query holds the list parameters for one resource collection: the page
// cursor plus everything that shapes the result set.
type Query struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  Order
}

// DefaultQuery returns the query every controller starts from. A limit of
// zero or less falls back to DefaultLimit.
func DefaultQuery(limit int) Query {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Query{
		Page:   1,
		Limit:  limit,
		Search: "",
		SortBy: "id",
		Order:  OrderDesc,
	}
}

// Values encodes the query as the request parameters the backend expects.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("search", q.Search)
	v.Set("sort_by", q.SortBy)
	v.Set("order", string(q.Order))
	return v
}

// Page is one fetched page of a partitioned collection. Primary holds the
// active/current subset, Secondary the past subset; the split comes from
// the server and is never re-derived here.
type Page[T Resource] struct {
	Primary    []T
	Secondary  []T
	TotalPages int
}
