package model

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Sortable record fields. An unknown sort key means "no sort".
const (
	SortByID          = "id"
	SortByName        = "name"
	SortByStatus      = "status"
	SortByLatitude    = "latitude"
	SortByLongitude   = "longitude"
	SortByLastUpdated = "last_updated"
)

// PageSizes are the page sizes the dashboard offers.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used when a request names no page size.
const DefaultPageSize = 25

// QueryParams describes one query over the record collection. Schema tags
// are consumed when decoding the query string of GET /api/records.
type QueryParams struct {
	FilterText string    `json:"filter_text" schema:"q"`
	SortKey    string    `json:"sort_key" schema:"sort"`
	SortOrder  SortOrder `json:"sort_order" schema:"order"`
	Page       int       `json:"page" schema:"page"`
	PageSize   int       `json:"page_size" schema:"page_size"`
}

// Normalize clamps params to their documented domains: page >= 1, page size
// one of PageSizes (nearest wins, defaulting to DefaultPageSize when unset),
// order asc unless desc was asked for. The engine itself never clamps.
func (p QueryParams) Normalize() QueryParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.SortOrder != OrderDesc {
		p.SortOrder = OrderAsc
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
		return p
	}
	nearest := PageSizes[0]
	for _, s := range PageSizes {
		if abs(p.PageSize-s) < abs(p.PageSize-nearest) {
			nearest = s
		}
	}
	p.PageSize = nearest
	return p
}

// ResetsPage reports whether switching from prev to p must send the viewer
// back to page 1: any change to the filter text or the sort resets paging.
func (p QueryParams) ResetsPage(prev QueryParams) bool {
	return p.FilterText != prev.FilterText ||
		p.SortKey != prev.SortKey ||
		p.SortOrder != prev.SortOrder
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// QueryResult is one page of a filtered, sorted record collection.
// Items holds at most PageSize records; TotalMatched counts every record
// the filter admitted, across all pages.
type QueryResult struct {
	Items        []Record `json:"items"`
	TotalMatched int      `json:"total_matched"`
}
