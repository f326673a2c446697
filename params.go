package spiris

import (
	"net/url"
	"strconv"
)

// ListOptions control pagination of collection listings.
// The API serves at most 1000 items per page and enforces a rate limit of
// 600 requests per minute per client and endpoint.
type ListOptions struct {
	// Page is the page number to fetch. Zero fetches the first page.
	Page int
	// PageSize is the number of items per page. Zero lets the server
	// choose its default.
	PageSize int
}

// values encodes the options as query parameters. A nil receiver is valid
// and yields no parameters.
func (o *ListOptions) values() url.Values {
	if o == nil {
		return nil
	}

	q := make(url.Values)
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("pagesize", strconv.Itoa(o.PageSize))
	}
	return q
}

// QueryParams describe a filtered collection search using the API's
// OData-style query options.
type QueryParams struct {
	// Filter is an OData filter expression, e.g. `IsActive eq true`.
	Filter string
	// Select names the fields to return, comma separated.
	Select string
	// OrderBy names the sort field, optionally suffixed with " desc".
	OrderBy string
	// Page and PageSize paginate the filtered result.
	Page     int
	PageSize int
}

// values encodes the search as query parameters. A nil receiver is valid
// and yields no parameters.
func (p *QueryParams) values() url.Values {
	if p == nil {
		return nil
	}

	q := make(url.Values)
	if p.Filter != "" {
		q.Set("$filter", p.Filter)
	}
	if p.Select != "" {
		q.Set("$select", p.Select)
	}
	if p.OrderBy != "" {
		q.Set("$orderby", p.OrderBy)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pagesize", strconv.Itoa(p.PageSize))
	}
	return q
}
