// Package engine implements the in-memory query engine behind the dashboard:
// filter, stable sort, and pagination over a record snapshot. Query is a pure
// function recomputed per call; at n≈5000 there is nothing to index.
package engine

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/siteboard/internal/model"
)

// Query filters, sorts, and paginates records according to params. The input
// slice is never mutated. Out-of-range pages yield empty Items with
// TotalMatched intact; callers clamp pages, the engine does not.
func Query(records []model.Record, params model.QueryParams) model.QueryResult {
	matched := filter(records, params.FilterText)
	sortRecords(matched, params.SortKey, params.SortOrder)

	total := len(matched)
	start := (params.Page - 1) * params.PageSize
	if start < 0 || start >= total {
		return model.QueryResult{Items: []model.Record{}, TotalMatched: total}
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return model.QueryResult{Items: matched[start:end], TotalMatched: total}
}

// filter returns the records whose name, status, or id contains text
// case-insensitively. Blank or whitespace-only text admits everything.
// Always returns a fresh slice so the caller's snapshot stays untouched.
func filter(records []model.Record, text string) []model.Record {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		out := make([]model.Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]model.Record, 0, len(records)/4)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(string(r.Status)), needle) ||
			strings.Contains(strings.ToLower(r.ID), needle) {
			out = append(out, r)
		}
	}
	return out
}

// sortRecords stably sorts in place. String fields collate locale-aware,
// numeric fields compare numerically, timestamps chronologically. An unknown
// or empty key preserves insertion order.
func sortRecords(records []model.Record, key string, order model.SortOrder) {
	less := lessFunc(key)
	if less == nil {
		return
	}
	if order == model.OrderDesc {
		asc := less
		less = func(a, b model.Record) bool { return asc(b, a) }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func lessFunc(key string) func(a, b model.Record) bool {
	switch key {
	case model.SortByID:
		c := newCollator()
		return func(a, b model.Record) bool { return c.CompareString(a.ID, b.ID) < 0 }
	case model.SortByName:
		c := newCollator()
		return func(a, b model.Record) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case model.SortByStatus:
		c := newCollator()
		return func(a, b model.Record) bool {
			return c.CompareString(string(a.Status), string(b.Status)) < 0
		}
	case model.SortByLatitude:
		return func(a, b model.Record) bool { return a.Latitude < b.Latitude }
	case model.SortByLongitude:
		return func(a, b model.Record) bool { return a.Longitude < b.Longitude }
	case model.SortByLastUpdated:
		return func(a, b model.Record) bool { return a.LastUpdated.Before(b.LastUpdated) }
	default:
		return nil
	}
}

// newCollator builds a fresh collator per sort; collate.Collator is not safe
// for concurrent use and queries run on arbitrary request goroutines.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}
