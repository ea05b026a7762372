package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at registration and reset.
const MinPasswordLength = 6

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	specialPattern  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// IsValidUsername reports whether s is at least three letters, digits or underscores.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// IsValidEmail reports whether s has a local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s is long enough and mixes a letter, a digit
// and a non-alphanumeric character.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	return letterPattern.MatchString(s) && digitPattern.MatchString(s) && specialPattern.MatchString(s)
}

// ValidationError rejects a single form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects the field errors of one form submission.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// Err returns nil when no field error was collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Field returns the message recorded for field, if any.
func (e Errors) Field(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}
