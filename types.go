package crm

// Paging limits. No listing ever returns more than MaxListLimit rows per
// page, regardless of what the caller asked for.
const (
	// DefaultListLimit applies when a repository listing is invoked with a
	// non-positive limit.
	DefaultListLimit = 100

	// MaxListLimit caps every listing. Requests above it are clamped, never
	// rejected.
	MaxListLimit = 100

	// DefaultPageSize applies when a page request carries no size.
	DefaultPageSize = 20
)

// Entity is implemented by every row type the data-access layer manages.
type Entity interface {
	EntityID() int64
}

// Filters maps field names to match values. Field names the target schema
// does not declare are silently skipped.
type Filters map[string]any

// ListQuery describes one listing: window, filters, search term, ordering.
type ListQuery struct {
	// Skip is the number of rows to pass over before collecting.
	Skip int

	// Limit is the maximum number of rows to return. Zero or negative means
	// DefaultListLimit; anything above MaxListLimit is clamped down.
	Limit int

	// Filters are AND-combined equality/list/pattern matches.
	Filters Filters

	// Search is a free-text term OR-matched across the schema's searchable
	// fields. Empty means no search.
	Search string

	// OrderBy names the sort field; a leading '-' flips to descending.
	// Empty or unknown falls back to newest-first by id.
	OrderBy string
}

// Normalize returns a copy with the paging window clamped into range.
func (q ListQuery) Normalize() ListQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return q
}

// PageRequest is the transport-level paging input.
type PageRequest struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

// Normalize clamps the request into valid bounds: page at least 1, size
// within [1, MaxListLimit], defaulting to DefaultPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxListLimit {
		p.Size = MaxListLimit
	}
	return p
}

// Skip converts the page window into a row offset.
func (p PageRequest) Skip() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit returns the effective page size.
func (p PageRequest) Limit() int {
	return p.Normalize().Size
}

// PagedResult carries one page of rows together with paging metadata. Items
// and TotalRecords are computed from the same filters and search term, so
// the page contents and the total stay mutually consistent.
type PagedResult[T any] struct {
	Items        []T   `json:"items"`
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
	Page         int   `json:"page"`
	Size         int   `json:"size"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
}

// NewPagedResult assembles the paging envelope for one page of items.
func NewPagedResult[T any](items []T, total int64, page PageRequest) PagedResult[T] {
	p := page.Normalize()
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{
		Items:        items,
		TotalRecords: total,
		TotalPages:   totalPages,
		Page:         p.Page,
		Size:         p.Size,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1,
	}
}
