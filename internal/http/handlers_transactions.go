package http

import (
	"net/http"
	"time"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/csvio"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
)

// filteredTransactions runs the full filter pipeline for the request:
// person scope, table filters, then the resolved date interval.
func (s *Server) filteredTransactions(r *http.Request, identity Identity) ([]services.MonthGroup, services.Totals, services.DateInterval, error) {
	transactions, err := s.repo.ListTransactions(r.Context(), identity.HouseholdID)
	if err != nil {
		return nil, services.Totals{}, services.DateInterval{}, err
	}

	view := s.viewContext(r, identity)
	scoped := services.FilterByPerson(transactions, view.Person)
	interval := services.ResolveInterval(view.Range, view.Custom, time.Now())
	filtered := services.FilterByInterval(tableFilter(r).Apply(scoped), interval)

	return services.GroupByMonth(filtered), services.GrandTotals(filtered), interval, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	groups, totals, interval, err := s.filteredTransactions(r, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Start  string           `json:"start"`
		End    string           `json:"end"`
		Groups []monthGroupView `json:"groups"`
		Totals totalsView       `json:"totals"`
	}{
		Start:  interval.Start,
		End:    interval.End,
		Groups: viewGroups(groups),
		Totals: viewTotals(totals),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	draft, err := payload.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), identity.HouseholdID, identity.UserID, draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewTransaction(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	var payload transactionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := payload.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}
	t.ID = r.PathValue("id")

	if err := s.ledger.UpdateTransaction(r.Context(), identity.HouseholdID, t); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewTransaction(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)
	id := r.PathValue("id")

	// The delete event needs the row's fields, so fetch before removing.
	t, err := s.repo.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.ledger.DeleteTransaction(r.Context(), identity.HouseholdID, t); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	inserted, err := s.ledger.ImportCSV(r.Context(), identity.HouseholdID, identity.UserID, r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Imported     int               `json:"imported"`
		Transactions []transactionView `json:"transactions"`
	}{
		Imported:     len(inserted),
		Transactions: viewTransactions(inserted),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	identity := s.identity(r)

	transactions, err := s.repo.ListTransactions(r.Context(), identity.HouseholdID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := s.viewContext(r, identity)
	scoped := services.FilterByPerson(transactions, view.Person)
	interval := services.ResolveInterval(view.Range, view.Custom, time.Now())
	filtered := services.FilterByInterval(tableFilter(r).Apply(scoped), interval)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := csvio.Export(w, filtered); err != nil {
		writeError(w, r, err)
	}
}
