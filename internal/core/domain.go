package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PersonJoint Person = "joint"
	PersonYou   Person = "you"
	PersonWife  Person = "wife"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type (
	// Person is the 3-value scope partition. Joint entries belong to everyone.
	Person string

	// Kind carries the direction of a transaction; amounts themselves are
	// always non-negative magnitudes.
	Kind string

	Transaction struct {
		ID          string
		Date        string // YYYY-MM-DD
		Description string
		Category    string
		Amount      decimal.Decimal
		Kind        Kind
		Person      Person
	}

	Budget struct {
		ID       string
		Category string
		Amount   decimal.Decimal
		Month    string // YYYY-MM
		Person   Person
	}

	Asset struct {
		ID     string
		Name   string
		Value  decimal.Decimal
		Person Person
	}

	Liability struct {
		ID     string
		Name   string
		Value  decimal.Decimal
		Person Person
	}

	RecurringRule struct {
		ID          string
		Description string
		Category    string
		Amount      decimal.Decimal
		Kind        Kind
		Person      Person
		DayOfMonth  int // 1-31, clamped at expansion time
		Active      bool
	}

	// Snapshot is the in-memory collection set a household session works on.
	// Every view is derived fresh from it; nothing downstream caches.
	Snapshot struct {
		Transactions []Transaction
		Budgets      []Budget
		Assets       []Asset
		Liabilities  []Liability
		Rules        []RecurringRule
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidMonth      = errors.New("invalid month key")
	ErrInvalidPerson     = errors.New("invalid person")
	ErrInvalidKind       = errors.New("invalid kind")
	ErrEmptyName         = errors.New("empty name")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidDayOfMonth = errors.New("day of month out of range")
)

func (p Person) Valid() bool {
	switch p {
	case PersonJoint, PersonYou, PersonWife:
		return true
	}
	return false
}

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Signed returns the transaction's contribution to a net total: positive for
// income, negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// OwnedBy implements the person-scope filter contract.
func (t Transaction) OwnedBy() Person   { return t.Person }
func (b Budget) OwnedBy() Person        { return b.Person }
func (a Asset) OwnedBy() Person         { return a.Person }
func (l Liability) OwnedBy() Person     { return l.Person }
func (r RecurringRule) OwnedBy() Person { return r.Person }

func (t Transaction) Validate() error {
	if !IsStorageDate(t.Date) {
		return ErrInvalidDate
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Person.Valid() {
		return ErrInvalidPerson
	}
	return nil
}

func (b Budget) Validate() error {
	if ToMonthKey(b.Month) != b.Month {
		return ErrInvalidMonth
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !b.Person.Valid() {
		return ErrInvalidPerson
	}
	return nil
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.Value.IsNegative() {
		return ErrInvalidAmount
	}
	if !a.Person.Valid() {
		return ErrInvalidPerson
	}
	return nil
}

func (l Liability) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if l.Value.IsNegative() {
		return ErrInvalidAmount
	}
	if !l.Person.Valid() {
		return ErrInvalidPerson
	}
	return nil
}

func (r RecurringRule) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if !r.Person.Valid() {
		return ErrInvalidPerson
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return ErrInvalidDayOfMonth
	}
	return nil
}
