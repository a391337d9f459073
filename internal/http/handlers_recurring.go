package http

import (
	"net/http"
	"time"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

func (s *Server) handleListRecurringRules(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	rules, err := s.repo.ListRecurringRules(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]recurringRuleView, len(rules))
	for i, rule := range rules {
		out[i] = viewRecurringRule(rule)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRecurringRule(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload recurringRulePayload
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

	created, err := s.repo.CreateRecurringRule(r.Context(), identity.HouseholdID, identity.UserID, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewRecurringRule(created))
}

func (s *Server) handleUpdateRecurringRule(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload recurringRulePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	rule, err := payload.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	rule.ID = r.PathValue("id")
	if err := rule.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.repo.UpdateRecurringRule(r.Context(), identity.HouseholdID, rule); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewRecurringRule(rule))
}

func (s *Server) handleDeleteRecurringRule(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	if err := s.repo.DeleteRecurringRule(r.Context(), identity.HouseholdID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleApplyRecurring expands active rules into the target month. Running
// it twice is safe; the second run reports zero inserts.
func (s *Server) handleApplyRecurring(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	month := core.ToMonthKey(r.URL.Query().Get("month"))
	if month == "" {
		month = core.MonthKeyOf(time.Now())
	}

	inserted, err := s.recurring.ApplyMonth(r.Context(), identity.HouseholdID, identity.UserID, month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Month        string            `json:"month"`
		Inserted     int               `json:"inserted"`
		Transactions []transactionView `json:"transactions"`
	}{
		Month:        month,
		Inserted:     len(inserted),
		Transactions: viewTransactions(inserted),
	})
}
