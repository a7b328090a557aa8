package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
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

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Saudi national id / iqama: 10 digits starting with 1 or 2.
func IsValidNationalID(id string) bool {
	return len(id) == 10 && IsNumeric(id) && (id[0] == '1' || id[0] == '2')
}

// Saudi IBAN: "SA" followed by 22 digits.
var saudiIBANRegex = regexp.MustCompile(`^SA\d{22}$`)

func IsValidIBAN(iban string) bool {
	return saudiIBANRegex.MatchString(strings.ToUpper(strings.TrimSpace(iban)))
}

// IsValidUUID reports whether s parses as a UUID. Used on path parameters
// before they reach the database.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
