package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/csvio"
)

// LedgerService orchestrates transaction mutations. Every operation either
// applies at the storage collaborator or leaves state untouched and reports
// the failure; there is no partial local apply. Mirror notifications are
// best-effort and never fail the mutation.
type LedgerService struct {
	store  TransactionStore
	events EventPublisher
}

func NewLedgerService(store TransactionStore, events EventPublisher) *LedgerService {
	return &LedgerService{store: store, events: events}
}

func (s *LedgerService) CreateTransaction(ctx context.Context, householdID, createdBy string, draft core.Transaction) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}
	created, err := s.store.CreateTransaction(ctx, householdID, createdBy, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	s.publishSync(ctx, created.ID)
	return created, nil
}

// UpdateTransaction replaces the mutable fields while preserving identity.
func (s *LedgerService) UpdateTransaction(ctx context.Context, householdID string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, householdID, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publishSync(ctx, t.ID)
	return nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, householdID string, t core.Transaction) error {
	if err := s.store.DeleteTransaction(ctx, householdID, t.ID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if s.events != nil {
		if err := s.events.PublishTransactionDelete(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message", "id", t.ID, "error", err)
		}
	}
	return nil
}

// ImportCSV parses an upload and inserts every draft. A malformed file is
// rejected atomically before any insert; a storage failure mid-import stops
// and reports how far it got.
func (s *LedgerService) ImportCSV(ctx context.Context, householdID, createdBy string, r io.Reader) ([]core.Transaction, error) {
	drafts, err := csvio.Import(r)
	if err != nil {
		return nil, err
	}

	inserted := make([]core.Transaction, 0, len(drafts))
	for _, draft := range drafts {
		created, err := s.store.CreateTransaction(ctx, householdID, createdBy, draft)
		if err != nil {
			return inserted, fmt.Errorf("import row %d: %w", len(inserted)+1, err)
		}
		inserted = append(inserted, created)
		s.publishSync(ctx, created.ID)
	}

	slog.InfoContext(ctx, "CSV import complete", "rows", len(inserted))
	return inserted, nil
}

func (s *LedgerService) publishSync(ctx context.Context, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}
