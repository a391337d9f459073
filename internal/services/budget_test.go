package services

import (
	"testing"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

func budget(category, amount, month string, person core.Person) core.Budget {
	return core.Budget{Category: category, Amount: amt(amount), Month: month, Person: person}
}

func TestProgressNoBudgetIsNil(t *testing.T) {
	budgets := []core.Budget{budget("Food", "0", "2024-12", core.PersonJoint)}

	if got := Progress("Travel", "2024-12", nil, budgets); got != nil {
		t.Fatalf("no budget row should yield nil, got %+v", got)
	}
	// A zero-amount budget is a real row, distinct from "no budget defined".
	got := Progress("Food", "2024-12", nil, budgets)
	if got == nil {
		t.Fatalf("zero-amount budget should not be nil")
	}
	if got.Percentage != 0 || !got.Budget.IsZero() {
		t.Fatalf("zero budget figures wrong: %+v", got)
	}
}

func TestProgressFigures(t *testing.T) {
	budgets := []core.Budget{budget("Food", "400", "2024-12", core.PersonJoint)}
	txs := []core.Transaction{
		tx("2024-12-03", "Groceries", "Food", "250", core.KindExpense, core.PersonJoint),
		tx("2024-12-10", "Market", "Food", "50", core.KindExpense, core.PersonYou),
		tx("2024-12-12", "Refund", "Food", "100", core.KindIncome, core.PersonJoint),  // income never counts as spend
		tx("2024-11-03", "Groceries", "Food", "999", core.KindExpense, core.PersonJoint), // other month
		tx("2024-12-05", "Cinema", "Fun", "30", core.KindExpense, core.PersonJoint),      // other category
	}

	got := Progress("Food", "2024-12", txs, budgets)
	if got == nil {
		t.Fatalf("expected progress")
	}
	if !got.Spent.Equal(amt("300")) {
		t.Fatalf("spent: got %s", got.Spent)
	}
	if got.Percentage != 75 {
		t.Fatalf("percentage: got %v", got.Percentage)
	}
	if !got.Remaining.Equal(amt("100")) || !got.OverBy.IsZero() {
		t.Fatalf("remaining/overBy wrong: %+v", got)
	}
}

func TestProgressOverspend(t *testing.T) {
	budgets := []core.Budget{budget("Food", "100", "2024-12", core.PersonJoint)}
	txs := []core.Transaction{
		tx("2024-12-03", "Feast", "Food", "160", core.KindExpense, core.PersonJoint),
	}

	got := Progress("Food", "2024-12", txs, budgets)
	if !got.Remaining.Equal(amt("-60")) {
		t.Fatalf("remaining should be signed: got %s", got.Remaining)
	}
	if !got.OverBy.Equal(amt("60")) {
		t.Fatalf("overBy: got %s", got.OverBy)
	}
}

func TestProgressFirstMatchOnDuplicates(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "400", "2024-12", core.PersonJoint),
		budget("Food", "900", "2024-12", core.PersonJoint),
	}
	got := Progress("Food", "2024-12", nil, budgets)
	if !got.Budget.Equal(amt("400")) {
		t.Fatalf("duplicate rows should resolve to the first match, got %s", got.Budget)
	}
}

func TestRolloverNeutralWhenDisabled(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "100", "2024-11", core.PersonJoint),
		budget("Food", "100", "2024-12", core.PersonJoint),
	}
	txs := []core.Transaction{
		tx("2024-11-10", "Groceries", "Food", "40", core.KindExpense, core.PersonJoint),
	}

	got := Effective("Food", "2024-12", txs, budgets, false)
	if !got.EffectiveBudget.Equal(got.Budget) {
		t.Fatalf("flag off: effective budget %s != base %s", got.EffectiveBudget, got.Budget)
	}
	if got.EffectivePercentage != got.Percentage {
		t.Fatalf("flag off: effective percentage %v != base %v", got.EffectivePercentage, got.Percentage)
	}
	if !got.Rollover.IsZero() {
		t.Fatalf("flag off: rollover should be zero, got %s", got.Rollover)
	}
}

func TestRolloverAccumulation(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "100", "2024-11", core.PersonJoint),
		budget("Food", "100", "2024-12", core.PersonJoint),
	}
	txs := []core.Transaction{
		tx("2024-11-10", "Groceries", "Food", "40", core.KindExpense, core.PersonJoint),
		tx("2024-12-10", "Groceries", "Food", "150", core.KindExpense, core.PersonJoint),
	}

	got := Effective("Food", "2024-12", txs, budgets, true)
	if !got.Rollover.Equal(amt("60")) {
		t.Fatalf("rollover: got %s, want 60", got.Rollover)
	}
	if !got.EffectiveBudget.Equal(amt("160")) {
		t.Fatalf("effective budget: got %s, want 160", got.EffectiveBudget)
	}
	if got.EffectivePercentage != 93.75 {
		t.Fatalf("effective percentage: got %v, want 93.75", got.EffectivePercentage)
	}
	if got.Percentage != 150 {
		t.Fatalf("base percentage should stay 150, got %v", got.Percentage)
	}
}

func TestRolloverNegativeCarriesOverspend(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "100", "2024-11", core.PersonJoint),
		budget("Food", "100", "2024-12", core.PersonJoint),
	}
	txs := []core.Transaction{
		tx("2024-11-10", "Feast", "Food", "130", core.KindExpense, core.PersonJoint),
	}

	got := Effective("Food", "2024-12", txs, budgets, true)
	if !got.Rollover.Equal(amt("-30")) {
		t.Fatalf("rollover: got %s, want -30", got.Rollover)
	}
	if !got.EffectiveBudget.Equal(amt("70")) {
		t.Fatalf("effective budget: got %s, want 70", got.EffectiveBudget)
	}
}

func TestRolloverFlooredAtZero(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "100", "2024-11", core.PersonJoint),
		budget("Food", "50", "2024-12", core.PersonJoint),
	}
	txs := []core.Transaction{
		tx("2024-11-10", "Blowout", "Food", "400", core.KindExpense, core.PersonJoint),
	}

	got := Effective("Food", "2024-12", txs, budgets, true)
	if !got.EffectiveBudget.IsZero() {
		t.Fatalf("effective budget should floor at zero, got %s", got.EffectiveBudget)
	}
	if got.EffectivePercentage != 0 {
		t.Fatalf("zero effective budget yields 0 percentage, got %v", got.EffectivePercentage)
	}
}

func TestRolloverNoPriorBudgetIsZero(t *testing.T) {
	budgets := []core.Budget{budget("Food", "100", "2024-12", core.PersonJoint)}
	txs := []core.Transaction{
		tx("2024-11-10", "Groceries", "Food", "40", core.KindExpense, core.PersonJoint),
	}

	got := Effective("Food", "2024-12", txs, budgets, true)
	if !got.Rollover.IsZero() {
		t.Fatalf("no prior budget row: rollover should be zero, got %s", got.Rollover)
	}
	if !got.EffectiveBudget.Equal(amt("100")) {
		t.Fatalf("effective budget: got %s", got.EffectiveBudget)
	}
}

func TestMonthCategories(t *testing.T) {
	budgets := []core.Budget{
		budget("Food", "100", "2024-12", core.PersonJoint),
		budget("Fun", "50", "2024-12", core.PersonJoint),
		budget("Food", "200", "2024-12", core.PersonYou), // duplicate category
		budget("Travel", "300", "2024-11", core.PersonJoint),
	}
	got := MonthCategories("2024-12", budgets)
	if len(got) != 2 || got[0] != "Food" || got[1] != "Fun" {
		t.Fatalf("got %v", got)
	}
}
