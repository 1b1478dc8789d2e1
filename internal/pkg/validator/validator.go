package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUID regex: any RFC 4122 version, lowercase or uppercase hex digits.
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// UUID validation
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// MaxAmount bounds every monetary and hours input. Anything above it is
// treated as a data-entry error, not a legitimate value.
var MaxAmount = decimal.NewFromInt(100_000_000)

// IsBoundedAmount reports whether d is within [0, MaxAmount].
func IsBoundedAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(MaxAmount)
}

// IsPositiveAmount reports whether d is within (0, MaxAmount].
func IsPositiveAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}
