// Package pagination implements forward-only cursor paging with RFC 8288
// Link headers for list endpoints backed by Firestore queries.
package pagination

const (
	// DefaultLimit is used when the client omits limit.
	DefaultLimit = 20
	// MaxLimit caps a single page.
	MaxLimit = 100
)

// Params embeds into Huma input structs for pagination.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque cursor taken from the previous page's Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                                  default:"20" minimum:"1" maximum:"100"`
}

// PageSize returns the effective limit clamped to [1, MaxLimit].
func (p Params) PageSize() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}
	return p.Limit
}
