package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/amqp"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/mirror"
)

// TransactionGetter fetches a single transaction from primary storage.
type TransactionGetter interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
}

// SyncWorker reconciles the off-site ledger mirror with the primary
// database, one queue message at a time.
type SyncWorker struct {
	storage  TransactionGetter
	appender mirror.LedgerAppender
	remover  mirror.LedgerRemover
}

func NewSyncWorker(storage TransactionGetter, appender mirror.LedgerAppender, remover mirror.LedgerRemover) *SyncWorker {
	return &SyncWorker{
		storage:  storage,
		appender: appender,
		remover:  remover,
	}
}

// HandleMessage processes one sync message. Upserts fetch the transaction
// from storage and append it to the mirror; deletes use the fields embedded
// in the message because the local row no longer exists.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"op", msg.Op,
		"id", msg.ID)

	switch msg.Op {
	case amqp.OpUpsert:
		return w.handleUpsert(ctx, msg)
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg)
	default:
		return fmt.Errorf("unknown op %q", msg.Op)
	}
}

func (w *SyncWorker) handleUpsert(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.appender.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("append to mirror: %w", err)
	}

	slog.InfoContext(ctx, "Synced transaction to mirror",
		"id", msg.ID,
		"mirror_ref", ref,
		"description", t.Description)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	if w.remover == nil {
		slog.WarnContext(ctx, "No mirror remover configured, skipping deletion", "id", msg.ID)
		return nil
	}

	if err := w.remover.Remove(ctx, msg.Date, msg.Description, msg.Amount); err != nil {
		return fmt.Errorf("remove from mirror: %w", err)
	}

	slog.InfoContext(ctx, "Removed transaction from mirror",
		"id", msg.ID,
		"date", msg.Date)
	return nil
}
