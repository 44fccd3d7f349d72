package dto

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

var ErrInvalidOrdering = errors.New("invalid ordering")

var orderingFields = map[string]bool{
	"name":        true,
	"price":       true,
	"offer_price": true,
	"created_at":  true,
}

type ProductFilters struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Search     string `json:"search,omitempty"`
	Ordering   string `json:"ordering,omitempty"` // field, "-" prefix for desc
	CategoryID int64  `json:"category,omitempty"`
	Promoted   *bool  `json:"promoted,omitempty"`
}

// Normalize fills defaults and rejects unknown ordering keys.
func (f *ProductFilters) Normalize() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Ordering = strings.TrimSpace(f.Ordering)
	if f.Ordering != "" && !orderingFields[strings.TrimPrefix(f.Ordering, "-")] {
		return ErrInvalidOrdering
	}
	return nil
}

// Query encodes the filters as catalog API query parameters.
func (f *ProductFilters) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("page_size", strconv.Itoa(f.PageSize))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	}
	if f.CategoryID > 0 {
		q.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Promoted != nil {
		q.Set("promoted", strconv.FormatBool(*f.Promoted))
	}
	return q
}

// ParseFilters reads filters from a storefront request query.
func ParseFilters(q url.Values) (*ProductFilters, error) {
	f := &ProductFilters{
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if raw := q.Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("invalid category")
		}
		f.CategoryID = id
	}
	if raw := q.Get("promoted"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("invalid promoted flag")
		}
		f.Promoted = &v
	}
	return f, f.Normalize()
}
