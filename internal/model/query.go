package model

import "net/url"

// StatusFilter narrows the listing by the product active flag.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// SortField selects the column the listing is ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByStock     SortField = "stock"
	SortByCreatedAt SortField = "createdAt"
)

// SortOrder selects the listing direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Query is the full set of user-controlled listing parameters. Every axis
// always holds a value; "all" (or an empty search) means the axis is omitted
// from the request, never sent literally.
type Query struct {
	Search     string
	Status     StatusFilter
	CategoryID string
	SortBy     SortField
	Order      SortOrder
}

// DefaultQuery returns the query used for the initial listing.
func DefaultQuery() Query {
	return Query{
		Search:     "",
		Status:     StatusAll,
		CategoryID: CategoryAll,
		SortBy:     SortByCreatedAt,
		Order:      OrderDesc,
	}
}

// Values serializes the query for the products endpoint. Sentinel axes are
// dropped here, at the client boundary; sort axes are always present.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	switch q.Status {
	case StatusActive:
		v.Set("isActive", "true")
	case StatusInactive:
		v.Set("isActive", "false")
	}
	if q.CategoryID != "" && q.CategoryID != CategoryAll {
		v.Set("categoryId", q.CategoryID)
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	order := q.Order
	if order == "" {
		order = OrderDesc
	}
	v.Set("sortBy", string(sortBy))
	v.Set("sortOrder", string(order))
	return v
}
