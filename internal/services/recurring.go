package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// ExpandRecurring materializes active rules into transaction drafts for the
// target month. The rule's day-of-month is clamped into the month; a
// candidate is skipped when a transaction already matches on the
// (date, description, amount, kind, person) quintuple. That field-tuple
// check is the sole idempotence guard: it does not use rule identity, so two
// rules with identical fields suppress each other.
func ExpandRecurring(rules []core.RecurringRule, existing []core.Transaction, month string) []core.Transaction {
	working := existing
	var inserted []core.Transaction

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		candidate := core.Transaction{
			Date:        core.DateInMonth(month, rule.DayOfMonth),
			Description: rule.Description,
			Category:    rule.Category,
			Amount:      rule.Amount,
			Kind:        rule.Kind,
			Person:      rule.Person,
		}
		if candidate.Date == "" {
			continue
		}
		if containsQuintuple(working, candidate) {
			continue
		}
		inserted = append(inserted, candidate)
		working = append(working, candidate)
	}
	return inserted
}

func containsQuintuple(transactions []core.Transaction, candidate core.Transaction) bool {
	for _, t := range transactions {
		if t.Date == candidate.Date &&
			t.Description == candidate.Description &&
			t.Amount.Equal(candidate.Amount) &&
			t.Kind == candidate.Kind &&
			t.Person == candidate.Person {
			return true
		}
	}
	return false
}

// RecurringService persists expanded rules through the storage collaborator
// and announces the new rows to the mirror worker.
type RecurringService struct {
	transactions TransactionStore
	rules        RecurringRuleStore
	events       EventPublisher
}

func NewRecurringService(transactions TransactionStore, rules RecurringRuleStore, events EventPublisher) *RecurringService {
	return &RecurringService{
		transactions: transactions,
		rules:        rules,
		events:       events,
	}
}

// ApplyMonth expands all active rules for the month and inserts what is not
// already realized. An empty result is the "nothing to add" condition, not
// an error. Each insert is independently fallible; a failed insert leaves
// the remaining candidates untouched and is reported.
func (s *RecurringService) ApplyMonth(ctx context.Context, householdID, createdBy, month string) ([]core.Transaction, error) {
	if core.ToMonthKey(month) != month {
		return nil, core.ErrInvalidMonth
	}

	rules, err := s.rules.ListRecurringRules(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	existing, err := s.transactions.ListTransactions(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	candidates := ExpandRecurring(rules, existing, month)
	slog.InfoContext(ctx, "Expanding recurring rules",
		"month", month,
		"active_rules", countActive(rules),
		"candidates", len(candidates))

	inserted := make([]core.Transaction, 0, len(candidates))
	for _, candidate := range candidates {
		created, err := s.transactions.CreateTransaction(ctx, householdID, createdBy, candidate)
		if err != nil {
			return inserted, fmt.Errorf("insert recurring transaction %q: %w", candidate.Description, err)
		}
		inserted = append(inserted, created)
		s.publishSync(ctx, created.ID)
	}

	slog.InfoContext(ctx, "Recurring expansion complete",
		"month", month,
		"inserted", len(inserted))
	return inserted, nil
}

func (s *RecurringService) publishSync(ctx context.Context, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}

func countActive(rules []core.RecurringRule) int {
	n := 0
	for _, r := range rules {
		if r.Active {
			n++
		}
	}
	return n
}
