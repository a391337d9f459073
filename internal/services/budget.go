package services

import (
	"github.com/shopspring/decimal"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// BudgetProgress is the spent-vs-budgeted state of one (category, month)
// pair, computed from the person-scoped collections. Budgets are evaluated
// per calendar month, independent of the dashboard's date-range selector.
type BudgetProgress struct {
	Category   string
	Month      string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Percentage float64
	Remaining  decimal.Decimal // signed: negative means overspent
	OverBy     decimal.Decimal
}

// EffectiveProgress folds the rollover contribution into the figures shown
// to the user. With rollover disabled the effective figures equal the base
// ones.
type EffectiveProgress struct {
	BudgetProgress
	Rollover            decimal.Decimal
	EffectiveBudget     decimal.Decimal
	EffectivePercentage float64
	EffectiveRemaining  decimal.Decimal
	EffectiveOverBy     decimal.Decimal
}

// Progress computes spent-vs-budgeted for one category and month. It returns
// nil when no budget row exists for the pair: callers must treat that as "no
// budget defined", which is distinct from a zero-amount budget. Duplicate
// budget rows resolve to the first match.
func Progress(category, month string, transactions []core.Transaction, budgets []core.Budget) *BudgetProgress {
	var budget *core.Budget
	for i := range budgets {
		if budgets[i].Category == category && budgets[i].Month == month {
			budget = &budgets[i]
			break
		}
	}
	if budget == nil {
		return nil
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Kind == core.KindExpense && t.Category == category && core.ToMonthKey(t.Date) == month {
			spent = spent.Add(t.Amount)
		}
	}

	return &BudgetProgress{
		Category:   category,
		Month:      month,
		Budget:     budget.Amount,
		Spent:      spent,
		Percentage: core.Percentage(spent, budget.Amount),
		Remaining:  budget.Amount.Sub(spent),
		OverBy:     decimal.Max(decimal.Zero, spent.Sub(budget.Amount)),
	}
}

// Rollover is the signed carry-forward into month: the previous month's
// remaining for the category, or zero when the previous month had no budget
// row. It is always computed from current data, never stored.
func Rollover(category, month string, transactions []core.Transaction, budgets []core.Budget) decimal.Decimal {
	prev := Progress(category, core.PreviousMonth(month), transactions, budgets)
	if prev == nil {
		return decimal.Zero
	}
	return prev.Remaining
}

// Effective computes the rollover-adjusted progress for one category and
// month. The effective budget is floored at zero so a large prior overspend
// never shows as a negative budget, though it can consume the whole
// rolled-in amount.
func Effective(category, month string, transactions []core.Transaction, budgets []core.Budget, rolloverEnabled bool) *EffectiveProgress {
	base := Progress(category, month, transactions, budgets)
	if base == nil {
		return nil
	}

	out := &EffectiveProgress{BudgetProgress: *base}
	if !rolloverEnabled {
		out.Rollover = decimal.Zero
		out.EffectiveBudget = base.Budget
		out.EffectivePercentage = base.Percentage
		out.EffectiveRemaining = base.Remaining
		out.EffectiveOverBy = base.OverBy
		return out
	}

	rollover := Rollover(category, month, transactions, budgets)
	effective := decimal.Max(decimal.Zero, base.Budget.Add(rollover))

	out.Rollover = rollover
	out.EffectiveBudget = effective
	out.EffectivePercentage = core.Percentage(base.Spent, effective)
	out.EffectiveRemaining = effective.Sub(base.Spent)
	out.EffectiveOverBy = decimal.Max(decimal.Zero, base.Spent.Sub(effective))
	return out
}

// MonthCategories returns the distinct budget categories present in a month,
// in first-seen order, for building the month's budget lines.
func MonthCategories(month string, budgets []core.Budget) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	return out
}
