package mirror

import (
	"context"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Ports for the off-site ledger mirror. The mirror is an append-oriented
// copy of the household ledger kept outside the primary database; the sync
// worker reconciles it from queue messages.
type (
	LedgerAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// LedgerRemover removes a mirrored row by its identifying fields. The
	// mirror has no database IDs, so removal matches on date, description
	// and amount.
	LedgerRemover interface {
		Remove(ctx context.Context, date, description, amount string) error
	}
)
