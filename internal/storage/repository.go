package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// ErrNotFound reports a write or lookup that matched no row for the
// household. Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// Repository is the storage collaborator: five household-scoped collections
// in SQLite. Row-level scoping happens here; the engine never sees another
// household's rows. Budget months are persisted in the full-date storage
// form and reduced back to month keys on load.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- transactions ---

func (r *Repository) ListTransactions(ctx context.Context, householdID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, category, amount, kind, person
		 FROM transactions WHERE household_id = ? ORDER BY date DESC, created_at DESC`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Category, &amount, &t.Kind, &t.Person); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount for transaction %s: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) CreateTransaction(ctx context.Context, householdID, createdBy string, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, household_id, date, description, category, amount, kind, person, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, householdID, t.Date, t.Description, t.Category, t.Amount.String(), t.Kind, t.Person, createdBy)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"date", t.Date,
		"category", t.Category,
		"kind", t.Kind)
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, householdID string, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, description = ?, category = ?, amount = ?, kind = ?, person = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		t.Date, t.Description, t.Category, t.Amount.String(), t.Kind, t.Person, t.ID, householdID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, "transaction", t.ID)
}

func (r *Repository) DeleteTransaction(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, "transaction", id)
}

// GetTransaction fetches a single row, used by the mirror worker.
func (r *Repository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	var t core.Transaction
	var amount string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, description, category, amount, kind, person
		 FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Date, &t.Description, &t.Category, &amount, &t.Kind, &t.Person)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("decode amount for transaction %s: %w", id, err)
	}
	return t, nil
}

// --- budgets ---

func (r *Repository) ListBudgets(ctx context.Context, householdID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, amount, month_date, person
		 FROM budgets WHERE household_id = ? ORDER BY month_date DESC, category`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var amount, monthDate string
		if err := rows.Scan(&b.ID, &b.Category, &amount, &monthDate, &b.Person); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount for budget %s: %w", b.ID, err)
		}
		b.Month = core.ToMonthKey(monthDate)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) CreateBudget(ctx context.Context, householdID, createdBy string, b core.Budget) (core.Budget, error) {
	monthDate, ok := core.MonthToStorageDate(b.Month)
	if !ok {
		return core.Budget{}, core.ErrInvalidMonth
	}
	b.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, household_id, category, amount, month_date, person, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, householdID, b.Category, b.Amount.String(), monthDate, b.Person, createdBy)
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	return b, nil
}

func (r *Repository) UpdateBudget(ctx context.Context, householdID string, b core.Budget) error {
	monthDate, ok := core.MonthToStorageDate(b.Month)
	if !ok {
		return core.ErrInvalidMonth
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, amount = ?, month_date = ?, person = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		b.Category, b.Amount.String(), monthDate, b.Person, b.ID, householdID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res, "budget", b.ID)
}

func (r *Repository) DeleteBudget(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res, "budget", id)
}

// --- assets ---

func (r *Repository) ListAssets(ctx context.Context, householdID string) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, value, person FROM assets WHERE household_id = ? ORDER BY name`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []core.Asset
	for rows.Next() {
		var a core.Asset
		var value string
		if err := rows.Scan(&a.ID, &a.Name, &value, &a.Person); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		if a.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("decode value for asset %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) CreateAsset(ctx context.Context, householdID, createdBy string, a core.Asset) (core.Asset, error) {
	a.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (id, household_id, name, value, person, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, householdID, a.Name, a.Value.String(), a.Person, createdBy)
	if err != nil {
		return core.Asset{}, fmt.Errorf("insert asset: %w", err)
	}
	return a, nil
}

func (r *Repository) UpdateAsset(ctx context.Context, householdID string, a core.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET name = ?, value = ?, person = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		a.Name, a.Value.String(), a.Person, a.ID, householdID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireRow(res, "asset", a.ID)
}

func (r *Repository) DeleteAsset(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assets WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return requireRow(res, "asset", id)
}

// --- liabilities ---

func (r *Repository) ListLiabilities(ctx context.Context, householdID string) ([]core.Liability, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, value, person FROM liabilities WHERE household_id = ? ORDER BY name`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	defer rows.Close()

	var out []core.Liability
	for rows.Next() {
		var l core.Liability
		var value string
		if err := rows.Scan(&l.ID, &l.Name, &value, &l.Person); err != nil {
			return nil, fmt.Errorf("scan liability: %w", err)
		}
		if l.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("decode value for liability %s: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repository) CreateLiability(ctx context.Context, householdID, createdBy string, l core.Liability) (core.Liability, error) {
	l.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO liabilities (id, household_id, name, value, person, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, householdID, l.Name, l.Value.String(), l.Person, createdBy)
	if err != nil {
		return core.Liability{}, fmt.Errorf("insert liability: %w", err)
	}
	return l, nil
}

func (r *Repository) UpdateLiability(ctx context.Context, householdID string, l core.Liability) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE liabilities SET name = ?, value = ?, person = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		l.Name, l.Value.String(), l.Person, l.ID, householdID)
	if err != nil {
		return fmt.Errorf("update liability: %w", err)
	}
	return requireRow(res, "liability", l.ID)
}

func (r *Repository) DeleteLiability(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM liabilities WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete liability: %w", err)
	}
	return requireRow(res, "liability", id)
}

// --- recurring rules ---

func (r *Repository) ListRecurringRules(ctx context.Context, householdID string) ([]core.RecurringRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, category, amount, kind, person, day_of_month, active
		 FROM recurring_rules WHERE household_id = ? ORDER BY day_of_month, description`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringRule
	for rows.Next() {
		var rule core.RecurringRule
		var amount string
		if err := rows.Scan(&rule.ID, &rule.Description, &rule.Category, &amount, &rule.Kind, &rule.Person, &rule.DayOfMonth, &rule.Active); err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		if rule.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount for rule %s: %w", rule.ID, err)
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *Repository) CreateRecurringRule(ctx context.Context, householdID, createdBy string, rule core.RecurringRule) (core.RecurringRule, error) {
	rule.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_rules (id, household_id, description, category, amount, kind, person, day_of_month, active, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, householdID, rule.Description, rule.Category, rule.Amount.String(), rule.Kind, rule.Person, rule.DayOfMonth, rule.Active, createdBy)
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("insert recurring rule: %w", err)
	}
	return rule, nil
}

func (r *Repository) UpdateRecurringRule(ctx context.Context, householdID string, rule core.RecurringRule) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_rules
		 SET description = ?, category = ?, amount = ?, kind = ?, person = ?, day_of_month = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		rule.Description, rule.Category, rule.Amount.String(), rule.Kind, rule.Person, rule.DayOfMonth, rule.Active, rule.ID, householdID)
	if err != nil {
		return fmt.Errorf("update recurring rule: %w", err)
	}
	return requireRow(res, "recurring rule", rule.ID)
}

func (r *Repository) DeleteRecurringRule(ctx context.Context, householdID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_rules WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete recurring rule: %w", err)
	}
	return requireRow(res, "recurring rule", id)
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
