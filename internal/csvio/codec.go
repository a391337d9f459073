// Package csvio is the CSV import/export boundary for transactions.
//
// Import maps a header row onto the six required columns, cleans each data
// row independently, and reports three distinct failure conditions: empty
// input, missing columns, and zero valid rows. Export emits the same
// six-column layout with RFC-4180 quoting and CRLF row terminators.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Required header columns, in canonical export order.
var columns = []string{"Date", "Description", "Amount", "Type", "Category", "Person"}

var (
	ErrEmptyFile   = errors.New("file is empty")
	ErrNoValidRows = errors.New("no valid rows found")
)

// MissingColumnsError names the required header columns absent from an
// import, so the user can fix the file rather than guess.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (expected header: %s)",
		strings.Join(e.Missing, ", "), strings.Join(columns, ","))
}

// Import parses CSV text into validated transaction drafts. Drafts carry no
// ID; the caller assigns identity when persisting. Rows whose Amount does
// not parse are dropped silently and show up only as a reduced count.
func Import(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	field := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	drafts := make([]core.Transaction, 0, len(records)-1)
	for _, row := range records[1:] {
		amount, err := core.ParseSignedAmount(field(row, "Amount"))
		if err != nil {
			continue // silently dropped, reflected only in the output count
		}

		drafts = append(drafts, core.Transaction{
			Date:        field(row, "Date"),
			Description: field(row, "Description"),
			Category:    defaultBlank(field(row, "Category"), "Other"),
			Amount:      amount.Abs(),
			Kind:        normalizeKind(field(row, "Type")),
			Person:      normalizePerson(field(row, "Person")),
		})
	}

	if len(drafts) == 0 {
		return nil, ErrNoValidRows
	}
	return drafts, nil
}

// row is the export shape; tags drive the gocsv header.
type row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
	Person      string `csv:"Person"`
}

// Export writes transactions as CSV with the canonical six-column header.
// Amounts render as plain decimal numbers.
func Export(w io.Writer, transactions []core.Transaction) error {
	rows := make([]row, len(transactions))
	for i, t := range transactions {
		rows[i] = row{
			Date:        t.Date,
			Description: t.Description,
			Amount:      core.FormatAmount(t.Amount),
			Type:        string(t.Kind),
			Category:    t.Category,
			Person:      string(t.Person),
		}
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// normalizeKind maps any value with the case-insensitive prefix "inc" to
// income; everything else is an expense.
func normalizeKind(raw string) core.Kind {
	if len(raw) >= 3 && strings.EqualFold(raw[:3], "inc") {
		return core.KindIncome
	}
	return core.KindExpense
}

// normalizePerson lowercases and keeps only the exact you/wife tokens;
// anything else is treated as joint.
func normalizePerson(raw string) core.Person {
	switch strings.ToLower(raw) {
	case string(core.PersonYou):
		return core.PersonYou
	case string(core.PersonWife):
		return core.PersonWife
	default:
		return core.PersonJoint
	}
}

func defaultBlank(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
