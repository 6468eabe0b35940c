package inventory

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"clawtrack/internal/prize"
)

// SortOrder selects how the projection is ordered.
type SortOrder int

const (
	// SortNewest orders by acquisition date, newest first. Ties keep
	// their original collection order.
	SortNewest SortOrder = iota
	SortNameAsc
	SortNameDesc
)

// String returns the flag/display name of the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortNameAsc:
		return "name"
	case SortNameDesc:
		return "name-desc"
	default:
		return "newest"
	}
}

// ParseSortOrder maps a flag value to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "newest", "":
		return SortNewest, nil
	case "name":
		return SortNameAsc, nil
	case "name-desc":
		return SortNameDesc, nil
	default:
		return SortNewest, fmt.Errorf("unknown sort order %q (want newest, name, or name-desc)", s)
	}
}

// Next cycles to the following sort order.
func (s SortOrder) Next() SortOrder {
	switch s {
	case SortNewest:
		return SortNameAsc
	case SortNameAsc:
		return SortNameDesc
	default:
		return SortNewest
	}
}

// Query derives the displayed projection from the collection. The zero
// value means: no search, all categories, newest first.
type Query struct {
	// Search filters by case-insensitive substring match on the name.
	Search string

	// Category keeps only matching records. Empty or prize.CategoryAll
	// disables the filter.
	Category prize.Category

	Sort SortOrder
}

// Apply returns the filtered, sorted projection of records. The input is
// never mutated; the whole projection is recomputed each call.
func (q Query) Apply(records []prize.Record) []prize.Record {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	filterCat := q.Category != "" && q.Category != prize.CategoryAll

	out := make([]prize.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		if filterCat && r.Category != q.Category {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortNameAsc, SortNameDesc:
		// Locale-aware name comparison; a collator is not safe for
		// concurrent use, so build one per call.
		c := collate.New(language.Und)
		asc := q.Sort == SortNameAsc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(out[i].Name, out[j].Name)
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AcquisitionDate.After(out[j].AcquisitionDate)
		})
	}
	return out
}
