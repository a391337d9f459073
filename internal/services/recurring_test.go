package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

func rule(desc, category, amount string, kind core.Kind, person core.Person, day int, active bool) core.RecurringRule {
	return core.RecurringRule{
		Description: desc,
		Category:    category,
		Amount:      amt(amount),
		Kind:        kind,
		Person:      person,
		DayOfMonth:  day,
		Active:      active,
	}
}

func TestExpandRecurringBasic(t *testing.T) {
	rules := []core.RecurringRule{
		rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true),
		rule("Salary", "Income", "5000", core.KindIncome, core.PersonYou, 25, true),
		rule("Old gym", "Health", "30", core.KindExpense, core.PersonYou, 5, false),
	}

	got := ExpandRecurring(rules, nil, "2024-12")
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates (inactive skipped), got %d", len(got))
	}
	if got[0].Date != "2024-12-01" || got[1].Date != "2024-12-25" {
		t.Fatalf("dates wrong: %s, %s", got[0].Date, got[1].Date)
	}
	if got[0].Category != "Housing" || got[0].Kind != core.KindExpense || got[0].Person != core.PersonJoint {
		t.Fatalf("candidate fields wrong: %+v", got[0])
	}
}

func TestExpandRecurringClampsDay(t *testing.T) {
	rules := []core.RecurringRule{
		rule("Payday", "Income", "3000", core.KindIncome, core.PersonWife, 31, true),
	}
	got := ExpandRecurring(rules, nil, "2024-02")
	if len(got) != 1 || got[0].Date != "2024-02-29" {
		t.Fatalf("day should clamp to month length, got %+v", got)
	}
}

func TestExpandRecurringIdempotent(t *testing.T) {
	rules := []core.RecurringRule{
		rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true),
	}

	first := ExpandRecurring(rules, nil, "2024-12")
	if len(first) != 1 {
		t.Fatalf("first pass should insert, got %d", len(first))
	}
	second := ExpandRecurring(rules, first, "2024-12")
	if len(second) != 0 {
		t.Fatalf("second pass should be a no-op, got %d", len(second))
	}
}

func TestExpandRecurringQuintupleSuppression(t *testing.T) {
	// Two rules with identical fields suppress each other: the tuple check
	// knows nothing about rule identity.
	twin := rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true)
	got := ExpandRecurring([]core.RecurringRule{twin, twin}, nil, "2024-12")
	if len(got) != 1 {
		t.Fatalf("identical rules should yield a single insert, got %d", len(got))
	}
}

func TestExpandRecurringCategoryNotInTuple(t *testing.T) {
	existing := []core.Transaction{
		tx("2024-12-01", "Rent", "SomethingElse", "1200", core.KindExpense, core.PersonJoint),
	}
	rules := []core.RecurringRule{
		rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true),
	}
	got := ExpandRecurring(rules, existing, "2024-12")
	if len(got) != 0 {
		t.Fatalf("category is not part of the idempotence tuple, got %d inserts", len(got))
	}
}

// fakeStore is an in-memory TransactionStore + RecurringRuleStore for
// service-level tests.
type fakeStore struct {
	transactions []core.Transaction
	rules        []core.RecurringRule
	nextID       int
	failCreate   bool
}

func (f *fakeStore) ListTransactions(_ context.Context, _ string) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), f.transactions...), nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, _, _ string, t core.Transaction) (core.Transaction, error) {
	if f.failCreate {
		return core.Transaction{}, errors.New("storage rejected write")
	}
	f.nextID++
	t.ID = string(rune('a' + f.nextID))
	f.transactions = append(f.transactions, t)
	return t, nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, _ string, t core.Transaction) error {
	for i := range f.transactions {
		if f.transactions[i].ID == t.ID {
			f.transactions[i] = t
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeStore) DeleteTransaction(_ context.Context, _, id string) error {
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeStore) ListRecurringRules(_ context.Context, _ string) ([]core.RecurringRule, error) {
	return append([]core.RecurringRule(nil), f.rules...), nil
}

func TestRecurringServiceApplyMonth(t *testing.T) {
	store := &fakeStore{
		rules: []core.RecurringRule{
			rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true),
		},
	}
	svc := NewRecurringService(store, store, nil)

	inserted, err := svc.ApplyMonth(context.Background(), "hh1", "user1", "2024-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(inserted))
	}

	// Second run: nothing to add, distinct from an error.
	again, err := svc.ApplyMonth(context.Background(), "hh1", "user1", "2024-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second run should report nothing to add, got %d", len(again))
	}
}

func TestRecurringServiceRejectsBadMonth(t *testing.T) {
	svc := NewRecurringService(&fakeStore{}, &fakeStore{}, nil)
	if _, err := svc.ApplyMonth(context.Background(), "hh1", "user1", "2024-13"); !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestRecurringServiceStorageFailure(t *testing.T) {
	store := &fakeStore{
		rules: []core.RecurringRule{
			rule("Rent", "Housing", "1200", core.KindExpense, core.PersonJoint, 1, true),
		},
		failCreate: true,
	}
	svc := NewRecurringService(store, store, nil)

	inserted, err := svc.ApplyMonth(context.Background(), "hh1", "user1", "2024-12")
	if err == nil {
		t.Fatalf("expected storage failure to surface")
	}
	if len(inserted) != 0 {
		t.Fatalf("failed insert must not be reported as applied")
	}
}
