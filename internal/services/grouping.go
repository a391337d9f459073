package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// MonthGroup is one table section: the month's transactions with their own
// income/expense/net subtotals and a long display label.
type MonthGroup struct {
	Key          string
	Label        string
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
	Transactions []core.Transaction
}

// Totals are the grand figures for the Totals row, computed over the
// ungrouped filtered set.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// GroupByMonth buckets transactions by the month key of their date, most
// recent month first. Transactions with an unparsable date are excluded from
// grouping but still count toward GrandTotals elsewhere.
func GroupByMonth(transactions []core.Transaction) []MonthGroup {
	buckets := make(map[string][]core.Transaction)
	for _, t := range transactions {
		key := core.ToMonthKey(t.Date)
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], t)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]MonthGroup, 0, len(keys))
	for _, key := range keys {
		members := buckets[key]
		totals := GrandTotals(members)
		groups = append(groups, MonthGroup{
			Key:          key,
			Label:        core.MonthLabel(key),
			Income:       totals.Income,
			Expenses:     totals.Expenses,
			Net:          totals.Net,
			Transactions: members,
		})
	}
	return groups
}

// GrandTotals sums income and expense magnitudes separately; net is
// income minus expenses.
func GrandTotals(transactions []core.Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		if t.Kind == core.KindIncome {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}
