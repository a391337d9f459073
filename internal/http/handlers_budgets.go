package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	month := core.ToMonthKey(r.URL.Query().Get("month"))
	if month == "" {
		month = core.MonthKeyOf(time.Now())
	}

	budgets, err := s.repo.ListBudgets(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transactions, err := s.repo.ListTransactions(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := s.viewContext(r, identity)
	snap := core.Snapshot{Transactions: transactions, Budgets: budgets}
	lines := services.BudgetLinesFor(snap, view, month)

	monthBudgets := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		if b.Month == month {
			monthBudgets = append(monthBudgets, viewBudget(b))
		}
	}

	writeJSON(w, http.StatusOK, struct {
		Month   string           `json:"month"`
		Lines   []budgetLineView `json:"lines"`
		Budgets []budgetView     `json:"budgets"`
	}{
		Month:   month,
		Lines:   viewBudgetLines(lines),
		Budgets: monthBudgets,
	})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload budgetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	draft, err := payload.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.repo.CreateBudget(r.Context(), identity.HouseholdID, identity.UserID, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewBudget(created))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload budgetPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := payload.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	b.ID = r.PathValue("id")
	if err := b.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.repo.UpdateBudget(r.Context(), identity.HouseholdID, b); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewBudget(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if err := s.repo.DeleteBudget(r.Context(), identity.HouseholdID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleBudgetLine flips a budget line open or closed and pins it,
// excluding it from the automatic expansion rule from then on.
func (s *Server) handleToggleBudgetLine(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	category := strings.TrimSpace(r.PathValue("category"))
	if category == "" {
		writeError(w, r, core.ErrEmptyCategory)
		return
	}

	state := s.expansionFor(identity.HouseholdID)
	state.Toggle(category)

	writeJSON(w, http.StatusOK, struct {
		Category string `json:"category"`
		Expanded bool   `json:"expanded"`
		Pinned   bool   `json:"pinned"`
	}{
		Category: category,
		Expanded: state.IsExpanded(category),
		Pinned:   state.IsPinned(category),
	})
}
