package http

import (
	"net/http"
	"time"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
)

// handleDashboard derives the whole view in one shot: filtered transaction
// groups, totals, net worth, and the current month's budget panel. Everything
// is recomputed from a fresh snapshot; a collection that fails to load comes
// back empty and is named in the response.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	snap, report := s.repo.LoadSnapshot(r.Context(), identity.HouseholdID)
	view := s.viewContext(r, identity)
	dash := services.DeriveDashboard(snap, view, tableFilter(r), time.Now())

	writeJSON(w, http.StatusOK, struct {
		Start       string           `json:"start"`
		End         string           `json:"end"`
		Groups      []monthGroupView `json:"groups"`
		Totals      totalsView       `json:"totals"`
		NetWorth    netWorthView     `json:"netWorth"`
		BudgetMonth string           `json:"budgetMonth"`
		BudgetLines []budgetLineView `json:"budgetLines"`
		Failed      []string         `json:"failedCollections,omitempty"`
	}{
		Start:       dash.Interval.Start,
		End:         dash.Interval.End,
		Groups:      viewGroups(dash.Groups),
		Totals:      viewTotals(dash.Totals),
		NetWorth:    viewNetWorth(dash.NetWorth),
		BudgetMonth: dash.BudgetMonth,
		BudgetLines: viewBudgetLines(dash.BudgetLines),
		Failed:      report.Failed,
	})
}
