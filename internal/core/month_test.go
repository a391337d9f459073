package core

import (
	"testing"
	"time"
)

func TestToMonthKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-12-01", "2024-12"},
		{"2024-12", "2024-12"},
		{"2024-01-31T10:00:00Z", "2024-01"},
		{"2024-13-01", ""},
		{"2024-00", ""},
		{"garbage", ""},
		{"", ""},
		{"24-12", ""},
	}
	for _, tc := range cases {
		if got := ToMonthKey(tc.in); got != tc.want {
			t.Fatalf("ToMonthKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMonthToStorageDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-12", "2024-12-01", true},
		{"2024-12-15", "2024-12-15", true},
		{"2024-13", "", false},
		{"nope", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := MonthToStorageDate(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("MonthToStorageDate(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMonthArithmetic(t *testing.T) {
	if got := PreviousMonth("2024-01"); got != "2023-12" {
		t.Fatalf("PreviousMonth rollover: got %q", got)
	}
	if got := PreviousMonth("2024-06"); got != "2024-05" {
		t.Fatalf("PreviousMonth: got %q", got)
	}
	if got := NextMonth("2024-12"); got != "2025-01" {
		t.Fatalf("NextMonth rollover: got %q", got)
	}
	if got := NextMonth("2024-06"); got != "2024-07" {
		t.Fatalf("NextMonth: got %q", got)
	}
	if got := PreviousMonth("bogus"); got != "" {
		t.Fatalf("PreviousMonth on invalid input: got %q", got)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2024-12"); got != "December 2024" {
		t.Fatalf("MonthLabel: got %q", got)
	}
	if got := MonthLabel(""); got != "" {
		t.Fatalf("MonthLabel on invalid input: got %q", got)
	}
}

func TestDateInMonth(t *testing.T) {
	cases := []struct {
		key  string
		day  int
		want string
	}{
		{"2024-02", 31, "2024-02-29"}, // leap year clamp
		{"2023-02", 31, "2023-02-28"},
		{"2024-04", 31, "2024-04-30"},
		{"2024-01", 0, "2024-01-01"},
		{"2024-01", 40, "2024-01-31"},
		{"2024-06", 15, "2024-06-15"},
	}
	for _, tc := range cases {
		if got := DateInMonth(tc.key, tc.day); got != tc.want {
			t.Fatalf("DateInMonth(%q, %d) = %q, want %q", tc.key, tc.day, got, tc.want)
		}
	}
}

func TestMonthKeyOf(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	if got := MonthKeyOf(now); got != "2024-03" {
		t.Fatalf("MonthKeyOf: got %q", got)
	}
}
