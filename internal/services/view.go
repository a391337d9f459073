package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// ViewContext carries the session's view state explicitly, so every
// derivation below is a pure function of (snapshot, view, now). Budget and
// rollover figures use the person scope only; the date range applies to the
// transaction table alone.
type ViewContext struct {
	Person          core.Person
	Range           string       // one of the Range* names
	Custom          DateInterval // used when Range is custom
	RolloverEnabled bool
	Expansion       *ExpansionState
}

// NetWorth is the person-scoped asset/liability summary.
type NetWorth struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Net         decimal.Decimal
}

// BudgetLine is one row of the viewed month's budget panel.
type BudgetLine struct {
	Progress *EffectiveProgress
	Expanded bool
}

// Dashboard is the fully derived view: recomputed fresh from the snapshot on
// every call, which is what substitutes for concurrency control.
type Dashboard struct {
	Interval     DateInterval
	Transactions []core.Transaction
	Groups       []MonthGroup
	Totals       Totals
	NetWorth     NetWorth
	BudgetMonth  string
	BudgetLines  []BudgetLine
}

// DeriveDashboard runs the whole pipeline: person scope, table filters, date
// interval, grouping, totals, net worth, and the viewed month's budget lines
// with the auto-expansion pass applied.
func DeriveDashboard(snap core.Snapshot, view ViewContext, table TableFilter, now time.Time) Dashboard {
	scopedTx := FilterByPerson(snap.Transactions, view.Person)
	scopedBudgets := FilterByPerson(snap.Budgets, view.Person)

	interval := ResolveInterval(view.Range, view.Custom, now)
	tableTx := FilterByInterval(table.Apply(scopedTx), interval)

	month := core.MonthKeyOf(now)
	lines := deriveBudgetLines(month, scopedTx, scopedBudgets, view)

	return Dashboard{
		Interval:     interval,
		Transactions: tableTx,
		Groups:       GroupByMonth(tableTx),
		Totals:       GrandTotals(tableTx),
		NetWorth:     DeriveNetWorth(snap.Assets, snap.Liabilities, view.Person),
		BudgetMonth:  month,
		BudgetLines:  lines,
	}
}

// BudgetLinesFor derives the budget panel for an arbitrary month using the
// person scope only; the dashboard date selector never affects budgets.
func BudgetLinesFor(snap core.Snapshot, view ViewContext, month string) []BudgetLine {
	scopedTx := FilterByPerson(snap.Transactions, view.Person)
	scopedBudgets := FilterByPerson(snap.Budgets, view.Person)
	return deriveBudgetLines(month, scopedTx, scopedBudgets, view)
}

func deriveBudgetLines(month string, scopedTx []core.Transaction, scopedBudgets []core.Budget, view ViewContext) []BudgetLine {
	categories := MonthCategories(month, scopedBudgets)
	progress := make([]*EffectiveProgress, 0, len(categories))
	for _, category := range categories {
		progress = append(progress, Effective(category, month, scopedTx, scopedBudgets, view.RolloverEnabled))
	}

	if view.Expansion != nil {
		view.Expansion.Recompute(progress)
	}

	lines := make([]BudgetLine, 0, len(progress))
	for _, p := range progress {
		if p == nil {
			continue
		}
		expanded := false
		if view.Expansion != nil {
			expanded = view.Expansion.IsExpanded(p.Category)
		}
		lines = append(lines, BudgetLine{Progress: p, Expanded: expanded})
	}
	return lines
}

// DeriveNetWorth sums person-scoped asset values minus liability values.
func DeriveNetWorth(assets []core.Asset, liabilities []core.Liability, person core.Person) NetWorth {
	scopedAssets := FilterByPerson(assets, person)
	scopedLiabilities := FilterByPerson(liabilities, person)

	totalAssets := decimal.Zero
	for _, a := range scopedAssets {
		totalAssets = totalAssets.Add(a.Value)
	}
	totalLiabilities := decimal.Zero
	for _, l := range scopedLiabilities {
		totalLiabilities = totalLiabilities.Add(l.Value)
	}
	return NetWorth{
		Assets:      totalAssets,
		Liabilities: totalLiabilities,
		Net:         totalAssets.Sub(totalLiabilities),
	}
}
