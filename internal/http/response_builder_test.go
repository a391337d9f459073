package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/csvio"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/storage"
)

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return d
}

func TestViewTransactionAmountAsString(t *testing.T) {
	v := viewTransaction(core.Transaction{
		ID:          "tx-1",
		Date:        "2024-12-03",
		Description: "Groceries",
		Category:    "Food",
		Amount:      mustAmount(t, "250.50"),
		Kind:        core.KindExpense,
		Person:      core.PersonJoint,
	})
	if v.Amount != "250.5" {
		t.Errorf("amount = %q", v.Amount)
	}
	if v.Kind != "expense" || v.Person != "joint" {
		t.Errorf("view = %+v", v)
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, 201, map[string]string{"ok": "yes"})

	if rec.Code != 201 {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != "yes" {
		t.Errorf("body = %v", body)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation error", core.ErrInvalidKind, 422},
		{"bad month", core.ErrInvalidMonth, 422},
		{"missing columns", &csvio.MissingColumnsError{Missing: []string{"Person"}}, 400},
		{"empty file", csvio.ErrEmptyFile, 400},
		{"missing row", fmt.Errorf("transaction tx-9: %w", storage.ErrNotFound), 404},
		{"storage failure", errTest, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest("POST", "/api/transactions", nil)
			writeError(rec, r, tt.err)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body should carry a message")
			}
		})
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
