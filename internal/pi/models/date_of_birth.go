package models

import (
	"fmt"
	"time"

	"genpi/pkg/platform/random"
)

const (
	dateLayout = "2006-01-02"

	// maxAgeYears bounds how far back a generated birth year may go.
	maxAgeYears = 120
)

// DateOfBirth is a calendar date that is always a real Gregorian date.
type DateOfBirth struct {
	year  int
	month time.Month
	day   int
}

// NewDateOfBirth validates year, month and day.
func NewDateOfBirth(year int, month time.Month, day int) (DateOfBirth, error) {
	if year < 1 || year > 9999 {
		return DateOfBirth{}, fmt.Errorf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return DateOfBirth{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return DateOfBirth{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return DateOfBirth{year: year, month: month, day: day}, nil
}

// GenerateDateOfBirth draws a date between (now.Year()-120)-01-01 and
// now.Year()-12-31. Year, month and day are drawn in turn, the day within the
// true length of the drawn month, so no draw is ever rejected.
func GenerateDateOfBirth(now time.Time) DateOfBirth {
	year := random.IntRange(now.Year()-maxAgeYears, now.Year())
	month := time.Month(random.IntRange(int(time.January), int(time.December)))
	day := random.IntRange(1, DaysIn(year, month))
	return DateOfBirth{year: year, month: month, day: day}
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ParseDateOfBirth parses YYYY-MM-DD.
func ParseDateOfBirth(s string) (DateOfBirth, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOfBirth{}, fmt.Errorf("parse date of birth: %w", err)
	}
	return NewDateOfBirth(t.Year(), t.Month(), t.Day())
}

func (d DateOfBirth) Year() int { return d.year }
func (d DateOfBirth) Month() time.Month { return d.month }
func (d DateOfBirth) Day() int { return d.day }
func (d DateOfBirth) IsZero() bool { return d.year == 0 }

// Time returns midnight UTC of the date.
func (d DateOfBirth) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d DateOfBirth) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d DateOfBirth) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DateOfBirth) UnmarshalText(text []byte) error {
	parsed, err := ParseDateOfBirth(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
