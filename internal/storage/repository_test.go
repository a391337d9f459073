package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTransactionRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateTransaction(ctx, "hh1", "user1", core.Transaction{
		Date:        "2024-12-03",
		Description: "Groceries",
		Category:    "Food",
		Amount:      amt("250.50"),
		Kind:        core.KindExpense,
		Person:      core.PersonJoint,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("create should assign an id")
	}

	list, err := repo.ListTransactions(ctx, "hh1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || !list[0].Amount.Equal(amt("250.50")) || list[0].Person != core.PersonJoint {
		t.Fatalf("round trip mismatch: %+v", list)
	}
}

func TestTransactionHouseholdScoping(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateTransaction(ctx, "hh1", "user1", core.Transaction{
		Date: "2024-12-03", Description: "Groceries", Category: "Food",
		Amount: amt("10"), Kind: core.KindExpense, Person: core.PersonJoint,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other, err := repo.ListTransactions(ctx, "hh2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("household hh2 must not see hh1 rows")
	}
	if err := repo.DeleteTransaction(ctx, "hh2", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-household delete should report not found, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, "hh1", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestMissingRowReportsNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.DeleteTransaction(ctx, "hh1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing transaction: %v", err)
	}
	if err := repo.UpdateBudget(ctx, "hh1", core.Budget{
		ID: "nope", Category: "Food", Amount: amt("1"), Month: "2024-12", Person: core.PersonJoint,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing budget: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing transaction: %v", err)
	}
}

func TestBudgetMonthStorageForm(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreateBudget(ctx, "hh1", "user1", core.Budget{
		Category: "Food", Amount: amt("200"), Month: "2024-12", Person: core.PersonJoint,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListBudgets(ctx, "hh1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Month != "2024-12" {
		t.Fatalf("budget month should come back in key form: %+v", list)
	}

	var stored string
	if err := repo.db.QueryRow(`SELECT month_date FROM budgets`).Scan(&stored); err != nil {
		t.Fatalf("raw query: %v", err)
	}
	if stored != "2024-12-01" {
		t.Fatalf("budget month should persist in full-date form, got %s", stored)
	}
}

func TestBudgetRejectsNonMonthKey(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.CreateBudget(context.Background(), "hh1", "user1", core.Budget{
		Category: "Food", Amount: amt("200"), Month: "December", Person: core.PersonJoint,
	}); err == nil {
		t.Fatalf("non-month value must be rejected")
	}
}

func TestRecurringRuleRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateRecurringRule(ctx, "hh1", "user1", core.RecurringRule{
		Description: "Rent", Category: "Housing", Amount: amt("1200"),
		Kind: core.KindExpense, Person: core.PersonJoint, DayOfMonth: 1, Active: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Active = false
	if err := repo.UpdateRecurringRule(ctx, "hh1", created); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.ListRecurringRules(ctx, "hh1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Active {
		t.Fatalf("update should persist the active flag: %+v", list)
	}
}

func TestLoadSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreateTransaction(ctx, "hh1", "user1", core.Transaction{
		Date: "2024-12-03", Description: "Groceries", Category: "Food",
		Amount: amt("250"), Kind: core.KindExpense, Person: core.PersonJoint,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if _, err := repo.CreateAsset(ctx, "hh1", "user1", core.Asset{
		Name: "House", Value: amt("300000"), Person: core.PersonJoint,
	}); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	snap, report := repo.LoadSnapshot(ctx, "hh1")
	if report.Partial() {
		t.Fatalf("unexpected partial load: %v", report.Failed)
	}
	if len(snap.Transactions) != 1 || len(snap.Assets) != 1 {
		t.Fatalf("snapshot incomplete: %+v", snap)
	}
}
