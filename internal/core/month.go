// Month keys are the engine's only time granularity for budgeting: a
// canonical YYYY-MM string. Full calendar dates reduce to a key by prefix
// truncation, and a key round-trips to the storage date form by appending
// the first day of the month.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	monthKeyPattern    = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	storageDatePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// ToMonthKey truncates a date-like string to its first 7 characters and
// returns the result only when it is a canonical month key; anything else
// yields "".
func ToMonthKey(dateLike string) string {
	if len(dateLike) < 7 {
		return ""
	}
	key := dateLike[:7]
	if !monthKeyPattern.MatchString(key) {
		return ""
	}
	return key
}

// IsStorageDate reports whether v is in the YYYY-MM-DD storage form.
func IsStorageDate(v string) bool {
	return storageDatePattern.MatchString(v)
}

// MonthToStorageDate converts a month key to the full-date form persisted by
// the storage collaborator. A value already in full-date form passes through
// unchanged; anything else fails.
func MonthToStorageDate(v string) (string, bool) {
	if storageDatePattern.MatchString(v) {
		return v, true
	}
	if monthKeyPattern.MatchString(v) {
		return v + "-01", true
	}
	return "", false
}

// PreviousMonth returns the month key one calendar month before key, rolling
// over year boundaries. Invalid input yields "".
func PreviousMonth(key string) string {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return ""
	}
	month--
	if month == 0 {
		month = 12
		year--
	}
	return joinMonthKey(year, month)
}

// NextMonth returns the month key one calendar month after key, rolling over
// year boundaries. Invalid input yields "".
func NextMonth(key string) string {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return ""
	}
	month++
	if month == 13 {
		month = 1
		year++
	}
	return joinMonthKey(year, month)
}

// MonthLabel renders a month key in its long display form, e.g.
// "December 2024". Invalid keys yield "".
func MonthLabel(key string) string {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return ""
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// DateInMonth builds the storage date for the given day within the month,
// clamping the day into [1, 31] and then to the month's actual length so the
// result is always a valid calendar date.
func DateInMonth(key string, day int) string {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return ""
	}
	if day < 1 {
		day = 1
	}
	if day > 31 {
		day = 31
	}
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return fmt.Sprintf("%s-%02d", key, day)
}

// MonthKeyOf returns the month key for a wall-clock instant.
func MonthKeyOf(t time.Time) string {
	return joinMonthKey(t.Year(), int(t.Month()))
}

func splitMonthKey(key string) (year, month int, ok bool) {
	if !monthKeyPattern.MatchString(key) {
		return 0, 0, false
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(key[5:7])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}

func joinMonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
