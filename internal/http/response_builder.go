// JSON response shaping: wire views of the domain types plus uniform error
// rendering. Amounts travel as decimal strings.

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/csvio"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/storage"
)

type transactionView struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Person      string `json:"person"`
}

func viewTransaction(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.String(),
		Kind:        string(t.Kind),
		Person:      string(t.Person),
	}
}

func viewTransactions(ts []core.Transaction) []transactionView {
	out := make([]transactionView, len(ts))
	for i, t := range ts {
		out[i] = viewTransaction(t)
	}
	return out
}

type budgetView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
	Person   string `json:"person"`
}

func viewBudget(b core.Budget) budgetView {
	return budgetView{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount.String(),
		Month:    b.Month,
		Person:   string(b.Person),
	}
}

type valuationView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Person string `json:"person"`
}

type recurringRuleView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Person      string `json:"person"`
	DayOfMonth  int    `json:"dayOfMonth"`
	Active      bool   `json:"active"`
}

func viewRecurringRule(r core.RecurringRule) recurringRuleView {
	return recurringRuleView{
		ID:          r.ID,
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount.String(),
		Kind:        string(r.Kind),
		Person:      string(r.Person),
		DayOfMonth:  r.DayOfMonth,
		Active:      r.Active,
	}
}

type monthGroupView struct {
	Key          string            `json:"key"`
	Label        string            `json:"label"`
	Income       string            `json:"income"`
	Expenses     string            `json:"expenses"`
	Net          string            `json:"net"`
	Transactions []transactionView `json:"transactions"`
}

func viewGroups(groups []services.MonthGroup) []monthGroupView {
	out := make([]monthGroupView, len(groups))
	for i, g := range groups {
		out[i] = monthGroupView{
			Key:          g.Key,
			Label:        g.Label,
			Income:       g.Income.String(),
			Expenses:     g.Expenses.String(),
			Net:          g.Net.String(),
			Transactions: viewTransactions(g.Transactions),
		}
	}
	return out
}

type totalsView struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

func viewTotals(t services.Totals) totalsView {
	return totalsView{
		Income:   t.Income.String(),
		Expenses: t.Expenses.String(),
		Net:      t.Net.String(),
	}
}

type netWorthView struct {
	Assets      string `json:"assets"`
	Liabilities string `json:"liabilities"`
	Net         string `json:"net"`
}

func viewNetWorth(nw services.NetWorth) netWorthView {
	return netWorthView{
		Assets:      nw.Assets.String(),
		Liabilities: nw.Liabilities.String(),
		Net:         nw.Net.String(),
	}
}

type budgetLineView struct {
	Category            string  `json:"category"`
	Month               string  `json:"month"`
	Budget              string  `json:"budget"`
	Spent               string  `json:"spent"`
	Percentage          float64 `json:"percentage"`
	Remaining           string  `json:"remaining"`
	OverBy              string  `json:"overBy"`
	Rollover            string  `json:"rollover"`
	EffectiveBudget     string  `json:"effectiveBudget"`
	EffectivePercentage float64 `json:"effectivePercentage"`
	EffectiveRemaining  string  `json:"effectiveRemaining"`
	EffectiveOverBy     string  `json:"effectiveOverBy"`
	Expanded            bool    `json:"expanded"`
}

func viewBudgetLines(lines []services.BudgetLine) []budgetLineView {
	out := make([]budgetLineView, 0, len(lines))
	for _, line := range lines {
		p := line.Progress
		if p == nil {
			continue
		}
		out = append(out, budgetLineView{
			Category:            p.Category,
			Month:               p.Month,
			Budget:              p.Budget.String(),
			Spent:               p.Spent.String(),
			Percentage:          p.Percentage,
			Remaining:           p.Remaining.String(),
			OverBy:              p.OverBy.String(),
			Rollover:            p.Rollover.String(),
			EffectiveBudget:     p.EffectiveBudget.String(),
			EffectivePercentage: p.EffectivePercentage,
			EffectiveRemaining:  p.EffectiveRemaining.String(),
			EffectiveOverBy:     p.EffectiveOverBy.String(),
			Expanded:            line.Expanded,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var missing *csvio.MissingColumnsError
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidPerson),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidDayOfMonth):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &missing),
		errors.Is(err, csvio.ErrEmptyFile),
		errors.Is(err, csvio.ErrNoValidRows):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
	} else {
		slog.WarnContext(r.Context(), "Request rejected", "error", err, "url", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
