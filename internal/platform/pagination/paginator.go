package pagination

import (
	"net/url"
	"strconv"
)

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
	LinkHeader string
}

// NewPage builds a page from a query that fetched up to limit+1 items. The
// extra item only signals that another page exists and is dropped.
func NewPage[T any](
	fetched []T,
	limit int,
	cursorType string,
	getID func(T) string,
	baseURL string,
	query url.Values,
) Page[T] {
	items := fetched
	var next string
	if limit > 0 && len(fetched) > limit {
		items = fetched[:limit]
		next = Cursor{Type: cursorType, Value: getID(items[len(items)-1])}.Encode()
	}
	if items == nil {
		items = []T{}
	}

	q := cloneValues(query)
	q.Del("cursor")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return Page[T]{
		Items:      items,
		NextCursor: next,
		LinkHeader: BuildLinkHeader(baseURL, q, next),
	}
}
