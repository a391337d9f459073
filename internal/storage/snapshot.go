package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// LoadReport carries per-collection load outcomes. A collection that fails
// to load comes back empty while the other four keep their data, so one bad
// table does not take the whole dashboard down.
type LoadReport struct {
	Failed []string
}

func (r LoadReport) Partial() bool { return len(r.Failed) > 0 }

func (r LoadReport) Error() string {
	return fmt.Sprintf("failed to load: %s", strings.Join(r.Failed, ", "))
}

// LoadSnapshot loads all five collections for a household concurrently.
// Collection failures are logged and reported, not fatal.
func (r *Repository) LoadSnapshot(ctx context.Context, householdID string) (core.Snapshot, LoadReport) {
	var snap core.Snapshot
	var report LoadReport

	fail := make(chan string, 5)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if snap.Transactions, err = r.ListTransactions(gctx, householdID); err != nil {
			slog.ErrorContext(gctx, "Failed to load transactions", "error", err)
			fail <- "transactions"
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Budgets, err = r.ListBudgets(gctx, householdID); err != nil {
			slog.ErrorContext(gctx, "Failed to load budgets", "error", err)
			fail <- "budgets"
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Assets, err = r.ListAssets(gctx, householdID); err != nil {
			slog.ErrorContext(gctx, "Failed to load assets", "error", err)
			fail <- "assets"
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Liabilities, err = r.ListLiabilities(gctx, householdID); err != nil {
			slog.ErrorContext(gctx, "Failed to load liabilities", "error", err)
			fail <- "liabilities"
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Rules, err = r.ListRecurringRules(gctx, householdID); err != nil {
			slog.ErrorContext(gctx, "Failed to load recurring rules", "error", err)
			fail <- "recurring_rules"
		}
		return nil
	})

	// The closures report failures through the channel and always return nil.
	_ = g.Wait()
	close(fail)
	for name := range fail {
		report.Failed = append(report.Failed, name)
	}

	return snap, report
}
