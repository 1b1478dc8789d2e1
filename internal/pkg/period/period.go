package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Period is one pay period, a calendar month. The canonical wire and storage
// form is the zero-padded "YYYY-MM" string, which compares correctly as text.
type Period struct {
	Year  int
	Month int
}

var periodRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

var ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM")

// Parse parses a "YYYY-MM" string into a Period.
func Parse(s string) (Period, error) {
	m := periodRegex.FindStringSubmatch(s)
	if m == nil {
		return Period{}, ErrInvalidPeriod
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	p := Period{Year: year, Month: month}
	if !p.Valid() {
		return Period{}, ErrInvalidPeriod
	}
	return p, nil
}

// New builds a Period from numeric month and year.
func New(year, month int) Period {
	return Period{Year: year, Month: month}
}

// Valid reports whether the period is a real month in the supported range.
// Years before 2000 are rejected as out-of-bound input.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 2000 && p.Year <= 9999
}

// String returns the zero-padded "YYYY-MM" form.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Before reports whether p is an earlier month than q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// After reports whether p is a later month than q.
func (p Period) After(q Period) bool {
	return q.Before(p)
}

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
