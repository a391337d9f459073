package services

import (
	"context"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Ports for outbound collaborators. The storage collaborator owns row-level
// authorization; the engine only hands it household-scoped requests.
type (
	TransactionStore interface {
		ListTransactions(ctx context.Context, householdID string) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, householdID, createdBy string, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, householdID string, t core.Transaction) error
		DeleteTransaction(ctx context.Context, householdID, id string) error
	}

	RecurringRuleStore interface {
		ListRecurringRules(ctx context.Context, householdID string) ([]core.RecurringRule, error)
	}

	// EventPublisher notifies the mirror worker about ledger changes. A nil
	// publisher is tolerated; mirroring is best-effort and never blocks a
	// local write.
	EventPublisher interface {
		PublishTransactionSync(ctx context.Context, id string) error
		PublishTransactionDelete(ctx context.Context, t core.Transaction) error
	}
)
