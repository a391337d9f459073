// Request parsing helpers: identity headers, view-state query parameters,
// and JSON payload decoding for the API resources.

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/services"
)

// Identity is the caller's household and user, taken from request headers.
// Single-family deployments fall back to the configured default household.
type Identity struct {
	HouseholdID string
	UserID      string
}

func (s *Server) identity(r *http.Request) Identity {
	household := strings.TrimSpace(r.Header.Get("X-Household-ID"))
	if household == "" {
		household = s.defaultHousehold
	}
	user := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if user == "" {
		user = "anonymous"
	}
	return Identity{HouseholdID: household, UserID: user}
}

// parsePerson maps the person query parameter onto the scope partition.
// Anything unrecognized is the joint (everyone) scope.
func parsePerson(v string) core.Person {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(core.PersonYou):
		return core.PersonYou
	case string(core.PersonWife):
		return core.PersonWife
	default:
		return core.PersonJoint
	}
}

// viewContext assembles the view state from query parameters. The rollover
// flag falls back to the server-wide default when absent.
func (s *Server) viewContext(r *http.Request, identity Identity) services.ViewContext {
	q := r.URL.Query()

	rangeName := strings.TrimSpace(q.Get("range"))
	if rangeName == "" {
		rangeName = services.RangeThisMonth
	}

	rollover := s.rolloverDefault == 1
	if v := strings.TrimSpace(q.Get("rollover")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			rollover = b
		}
	}

	return services.ViewContext{
		Person: parsePerson(q.Get("person")),
		Range:  rangeName,
		Custom: services.DateInterval{
			Start: strings.TrimSpace(q.Get("start")),
			End:   strings.TrimSpace(q.Get("end")),
		},
		RolloverEnabled: rollover,
		Expansion:       s.expansionFor(identity.HouseholdID),
	}
}

func tableFilter(r *http.Request) services.TableFilter {
	q := r.URL.Query()
	return services.TableFilter{
		Category: sanitizeInput(q.Get("category")),
		Kind:     strings.ToLower(strings.TrimSpace(q.Get("kind"))),
		Search:   sanitizeInput(q.Get("q")),
	}
}

// decodeJSON decodes a request body into dst, limiting the payload size.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// --- payloads ---

type transactionPayload struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Person      string `json:"person"`
}

func (p transactionPayload) toDomain() (core.Transaction, error) {
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:        strings.TrimSpace(p.Date),
		Description: sanitizeInput(p.Description),
		Category:    sanitizeInput(p.Category),
		Amount:      amount,
		Kind:        core.Kind(strings.ToLower(strings.TrimSpace(p.Kind))),
		Person:      parsePerson(p.Person),
	}, nil
}

type budgetPayload struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
	Person   string `json:"person"`
}

func (p budgetPayload) toDomain() (core.Budget, error) {
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Category: sanitizeInput(p.Category),
		Amount:   amount,
		Month:    core.ToMonthKey(p.Month),
		Person:   parsePerson(p.Person),
	}, nil
}

type valuationPayload struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Person string `json:"person"`
}

func (p valuationPayload) toAsset() (core.Asset, error) {
	value, err := core.ParseAmount(p.Value)
	if err != nil {
		return core.Asset{}, err
	}
	return core.Asset{Name: sanitizeInput(p.Name), Value: value, Person: parsePerson(p.Person)}, nil
}

func (p valuationPayload) toLiability() (core.Liability, error) {
	value, err := core.ParseAmount(p.Value)
	if err != nil {
		return core.Liability{}, err
	}
	return core.Liability{Name: sanitizeInput(p.Name), Value: value, Person: parsePerson(p.Person)}, nil
}

type recurringRulePayload struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Person      string `json:"person"`
	DayOfMonth  int    `json:"dayOfMonth"`
	Active      *bool  `json:"active"`
}

func (p recurringRulePayload) toDomain() (core.RecurringRule, error) {
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return core.RecurringRule{}, err
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return core.RecurringRule{
		Description: sanitizeInput(p.Description),
		Category:    sanitizeInput(p.Category),
		Amount:      amount,
		Kind:        core.Kind(strings.ToLower(strings.TrimSpace(p.Kind))),
		Person:      parsePerson(p.Person),
		DayOfMonth:  p.DayOfMonth,
		Active:      active,
	}, nil
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
