// Package services holds the aggregation and budgeting engine: pure
// derivations over an in-memory snapshot, plus the orchestration services
// that cross the storage boundary.
package services

import (
	"strings"
	"time"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Named date ranges understood by ResolveInterval.
const (
	RangeThisMonth   = "this-month"
	RangeLastMonth   = "last-month"
	RangeThreeMonths = "three-months"
	RangeYearToDate  = "year-to-date"
	RangeCustom      = "custom"
)

// FilterAll is the selector value that skips a category or kind filter.
const FilterAll = "all"

// PersonOwned is satisfied by every entity that carries a person scope.
type PersonOwned interface {
	OwnedBy() core.Person
}

// FilterByPerson applies the base scope. Selecting joint returns the input
// unchanged; selecting a specific person keeps that person's entries plus
// joint ones. Applied independently to each entity collection before any
// other filter.
func FilterByPerson[T PersonOwned](items []T, selected core.Person) []T {
	if selected == core.PersonJoint {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p := item.OwnedBy(); p == selected || p == core.PersonJoint {
			out = append(out, item)
		}
	}
	return out
}

// TableFilter is the category/kind/search stage of the pipeline, applied
// after person scoping and before date scoping.
type TableFilter struct {
	Category string // exact match, FilterAll skips
	Kind     string // exact match, FilterAll skips
	Search   string // case-insensitive substring, blank skips
}

// Apply filters in order: category, kind, then search across date,
// description and category.
func (f TableFilter) Apply(transactions []core.Transaction) []core.Transaction {
	out := transactions
	if f.Category != "" && f.Category != FilterAll {
		out = keep(out, func(t core.Transaction) bool { return t.Category == f.Category })
	}
	if f.Kind != "" && f.Kind != FilterAll {
		out = keep(out, func(t core.Transaction) bool { return string(t.Kind) == f.Kind })
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		out = keep(out, func(t core.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Date), search) ||
				strings.Contains(strings.ToLower(t.Description), search) ||
				strings.Contains(strings.ToLower(t.Category), search)
		})
	}
	return out
}

// DateInterval is an inclusive [Start, End] range in storage-date form.
// ISO dates compare correctly as strings, so the filter stays string-based
// like the rest of the engine.
type DateInterval struct {
	Start string
	End   string
}

// ResolveInterval turns a named range into concrete bounds. Custom ranges
// default missing bounds to start-of-year and today respectively. Unknown
// names resolve like custom.
func ResolveInterval(name string, custom DateInterval, now time.Time) DateInterval {
	today := now.Format("2006-01-02")
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	thisMonth := core.MonthKeyOf(now)

	switch name {
	case RangeThisMonth:
		return monthBounds(thisMonth)
	case RangeLastMonth:
		return monthBounds(core.PreviousMonth(thisMonth))
	case RangeThreeMonths:
		start := core.PreviousMonth(core.PreviousMonth(thisMonth))
		return DateInterval{
			Start: start + "-01",
			End:   monthBounds(thisMonth).End,
		}
	case RangeYearToDate:
		return DateInterval{Start: startOfYear, End: today}
	default:
		resolved := custom
		if resolved.Start == "" {
			resolved.Start = startOfYear
		}
		if resolved.End == "" {
			resolved.End = today
		}
		return resolved
	}
}

// FilterByInterval retains transactions whose date falls inside the interval,
// bounds inclusive.
func FilterByInterval(transactions []core.Transaction, interval DateInterval) []core.Transaction {
	return keep(transactions, func(t core.Transaction) bool {
		return t.Date >= interval.Start && t.Date <= interval.End
	})
}

func monthBounds(key string) DateInterval {
	if key == "" {
		return DateInterval{}
	}
	return DateInterval{
		Start: key + "-01",
		End:   core.DateInMonth(key, 31),
	}
}

func keep(transactions []core.Transaction, pred func(core.Transaction) bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
