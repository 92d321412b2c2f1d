package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 6
	maxPageSize     = 100

	// maxPageNumber keeps (number-1)*limit from overflowing.
	maxPageNumber = math.MaxInt / maxPageSize
)

// page is a limit/offset window parsed from ?page=&limit=.
type page struct {
	number int
	limit  int
}

func (p page) offset() int {
	return (p.number - 1) * p.limit
}

func parsePage(r *http.Request) page {
	p := page{
		number: getIntParam(r, "page", 1),
		limit:  getIntParam(r, "limit", defaultPageSize),
	}
	if p.number < 1 {
		p.number = 1
	}
	if p.number > maxPageNumber {
		p.number = maxPageNumber
	}
	if p.limit < 1 {
		p.limit = defaultPageSize
	}
	if p.limit > maxPageSize {
		p.limit = maxPageSize
	}
	return p
}

type paginated struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func newPaginated(r *http.Request, p page, total int, results any) paginated {
	out := paginated{Count: total, Results: results}
	if p.number*p.limit < total {
		next := pageURL(r, p.number+1)
		out.Next = &next
	}
	if p.number > 1 {
		prev := pageURL(r, p.number-1)
		out.Previous = &prev
	}
	return out
}

func pageURL(r *http.Request, number int) string {
	q := r.URL.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	return baseURL(r) + u.String()
}

// outOfRange reports a page past the end of a non-empty first page.
func (p page) outOfRange(total int) bool {
	return p.number > 1 && p.offset() >= total
}
