package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{"0", "0", true},
		{"5000", "5000", true},
		{"-3", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseAmount(%q) expected error", tc.in)
			}
			continue
		}
		if got.String() != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseSignedAmount(t *testing.T) {
	d, err := ParseSignedAmount("-42.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "-42.5" {
		t.Fatalf("got %s", d)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, whole string
		want        float64
	}{
		{"50", "100", 50},
		{"150", "160", 93.75},
		{"10", "0", 0},
	}
	for _, tc := range cases {
		part, _ := ParseAmount(tc.part)
		whole, _ := ParseAmount(tc.whole)
		if got := Percentage(part, whole); got != tc.want {
			t.Fatalf("Percentage(%s, %s) = %v, want %v", tc.part, tc.whole, got, tc.want)
		}
	}
}
