package pagination

import (
	"fmt"
	"net/url"
)

// BuildLinkHeader returns an RFC 8288 rel="next" link to baseURL with the
// given query and cursor, or "" when there is no next page.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor string) string {
	if nextCursor == "" {
		return ""
	}
	q := cloneValues(query)
	q.Set("cursor", nextCursor)
	return fmt.Sprintf("<%s?%s>; rel=\"next\"", baseURL, q.Encode())
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
